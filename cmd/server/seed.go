package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/postgres"
	"github.com/phrazzld/servicely-api/internal/store"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     domain.Role
}

type seedProvider struct {
	user       seedUser
	services   string
	experience int
	contact    string
	pincode    string
}

var (
	seedAdmin = seedUser{"Admin User", "admin@example.com", "admin123", domain.RoleAdmin}

	seedCustomer = seedUser{"Jane Doe", "jane@example.com", "password123", domain.RoleCustomer}

	seedProviders = []seedProvider{
		{seedUser{"John Plumber", "john@plumber.com", "password123", domain.RoleProvider}, "Plumber", 5, "1234567890", "110001"},
		{seedUser{"Mike Sparky", "mike@electrician.com", "password123", domain.RoleProvider}, "Electrician", 8, "0987654321", "110002"},
		{seedUser{"Alice Painter", "alice@painter.com", "password123", domain.RoleProvider}, "Painter", 3, "1122334455", "110001"},
	}
)

// seedDatabase inserts the demo accounts in a single transaction. Rows that
// already exist are left untouched, so running it twice is harmless.
func seedDatabase(ctx context.Context, db *sql.DB, bcryptCost int, logger *slog.Logger) error {
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return seed(
			ctx,
			postgres.NewPostgresUserStore(tx, logger, bcryptCost),
			postgres.NewPostgresProviderStore(tx, logger),
			logger,
		)
	})
}

func seed(ctx context.Context, users store.UserStore, providers store.ProviderStore, logger *slog.Logger) error {
	created := 0

	for _, su := range []seedUser{seedAdmin, seedCustomer} {
		_, isNew, err := ensureUser(ctx, users, su)
		if err != nil {
			return err
		}
		if isNew {
			created++
		}
	}

	for _, sp := range seedProviders {
		user, isNew, err := ensureUser(ctx, users, sp.user)
		if err != nil {
			return err
		}
		if isNew {
			created++
		}

		_, err = providers.GetByUserID(ctx, user.ID)
		if err == nil {
			continue
		}
		if !store.IsNotFoundError(err) {
			return fmt.Errorf("failed to look up provider for %s: %w", sp.user.email, err)
		}

		profile, err := domain.NewProviderProfile(user.ID, sp.services, sp.experience, sp.pincode, sp.contact, "")
		if err != nil {
			return fmt.Errorf("invalid seed provider %s: %w", sp.user.email, err)
		}
		profile.Verified = true
		if err := providers.Create(ctx, profile); err != nil {
			return fmt.Errorf("failed to create provider for %s: %w", sp.user.email, err)
		}
		created++
	}

	if created == 0 {
		logger.Info("Database already seeded")
		return nil
	}
	logger.Info("Seeding complete", "rows_created", created)
	return nil
}

// ensureUser returns the user with su's email, creating it if needed.
func ensureUser(ctx context.Context, users store.UserStore, su seedUser) (*domain.User, bool, error) {
	existing, err := users.GetByEmail(ctx, su.email)
	if err == nil {
		return existing, false, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, false, fmt.Errorf("failed to look up %s: %w", su.email, err)
	}

	user, err := domain.NewUser(su.name, su.email, su.password, su.role)
	if err != nil {
		return nil, false, fmt.Errorf("invalid seed user %s: %w", su.email, err)
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create %s: %w", su.email, err)
	}
	return user, true, nil
}
