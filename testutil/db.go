// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when required environment
// variables are not set, so unit tests run without a database.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/jimmeey/expiry-dashboard/migrations"
)

// MigratedPool opens a *pgxpool.Pool against TEST_DATABASE_URL with the
// embedded goose migrations applied, for exercising the Postgres row
// store. The test is skipped when TEST_DATABASE_URL is not set, so these
// integration tests are opt-in and never break environments without a
// database. The pool is closed when the test (and its subtests) finish.
func MigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := requireDSN(t)
	migrate(t, dsn)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.MigratedPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.MigratedPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// migrate brings the test database schema up to date.
func migrate(t *testing.T, dsn string) {
	t.Helper()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("testutil.migrate: open: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("testutil.migrate: dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		t.Fatalf("testutil.migrate: up: %v", err)
	}
}

// requireDSN returns the TEST_DATABASE_URL environment variable value,
// skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
