// Package main implements the entry point for the Servicely API server,
// which lets customers discover verified local service providers, book
// them and review completed work.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

type options struct {
	migrate string
	seed    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.migrate, "migrate", "", "run a migration command (up, down, status, version, reset, redo) and exit")
	flag.BoolVar(&opts.seed, "seed", false, "insert demo accounts and providers, then exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("servicely-api: %v", err)
	}
}

// run loads configuration, connects to the database and then either runs
// a one-shot command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, opts options) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	switch {
	case opts.migrate != "":
		defer closeDB(db, logger)
		return handleMigrations(ctx, db, logger, opts.migrate)
	case opts.seed:
		defer closeDB(db, logger)
		if err := seedDatabase(ctx, db, cfg.Auth.BcryptCost, logger); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		return nil
	}

	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		closeDB(db, logger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
