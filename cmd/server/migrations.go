package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/servicely-api/internal/platform/postgres"
)

// handleMigrations runs one goose command against the embedded migrations.
// It's called from run() when -migrate is set.
func handleMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger, command string) error {
	logger.Info("Executing migrations", "command", command)
	return postgres.Migrate(ctx, db, logger, command)
}
