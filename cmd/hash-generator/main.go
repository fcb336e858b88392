// Command hash-generator prints bcrypt hashes for passwords given on the
// command line. Admin accounts cannot self-register, so operators use it to
// provision them directly in the users table.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/servicely-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost n] password...")
		os.Exit(2)
	}

	if err := run(os.Stdout, *cost, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, cost int, passwords []string) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	for _, password := range passwords {
		if n := len(password); n < domain.MinPasswordLength || n > domain.MaxPasswordLength {
			return fmt.Errorf("password must be %d to %d bytes, got %d",
				domain.MinPasswordLength, domain.MaxPasswordLength, n)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Fprintln(w, string(hash))
	}
	return nil
}
