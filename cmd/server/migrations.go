package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Nivlac17/jwt-pizza-service/internal/platform/postgres"
)

// handleMigrations runs a single goose command requested with -migrate.
func handleMigrations(db *sql.DB, command string, logger *slog.Logger) error {
	logger.Info("Executing migrations", "command", command)
	if err := postgres.Migrate(db, command, logger); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	logger.Info("Migrations finished", "command", command)
	return nil
}
