//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Nivlac17/jwt-pizza-service/internal/platform/postgres"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"
)

// Timeout bounds every setup statement.
const Timeout = 5 * time.Second

// urlVars are checked in order.
var urlVars = []string{"PIZZA_TEST_DB_URL", "DATABASE_URL"}

// tables are truncated by Reset. Children first.
var tables = []string{
	"order_items", "orders", "menu_items", "stores",
	"franchises", "sessions", "user_roles", "users",
}

var migrateOnce sync.Once

// DatabaseURL returns the first configured test database URL, or "".
func DatabaseURL() string {
	for _, name := range urlVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Open connects to the test database, migrating it on first use. The test
// is skipped when no database is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skip("no test database configured; set PIZZA_TEST_DB_URL")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "test database unreachable")

	var migrateErr error
	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(db, "up", Logger())
	})
	require.NoError(t, migrateErr, "failed to migrate test database")

	Reset(t, db)
	return db
}

// Reset empties every application table.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	for _, table := range tables {
		_, err := db.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err, "failed to truncate %s", table)
	}
}

// Logger discards output unless PIZZA_TEST_VERBOSE is set.
func Logger() *slog.Logger {
	if os.Getenv("PIZZA_TEST_VERBOSE") != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
