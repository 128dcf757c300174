// Package testutil provides shared helpers for integration tests.
// Postgres helpers skip automatically when TEST_DATABASE_URL is not set, so
// unit tests can run without a running database. The SQLite helper always
// runs because it only needs a temp directory.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pkordes/lucky/internal/database"
)

// PostgresURLEnv names the variable that opts a run into Postgres tests.
const PostgresURLEnv = "TEST_DATABASE_URL"

// NewRestaurantTx opens a transaction on the TEST_DATABASE_URL database in
// which the restaurants table is empty. Nothing the test writes is committed:
// the transaction, including the emptying DELETE, is rolled back when the test
// finishes. Pass it to repo.NewRestaurantRepo.
func NewRestaurantTx(t *testing.T) pgx.Tx {
	t.Helper()

	pool := newPool(t)
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("testutil.NewRestaurantTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	if _, err := tx.Exec(ctx, `DELETE FROM restaurants`); err != nil {
		t.Fatalf("testutil.NewRestaurantTx: empty restaurants: %v", err)
	}
	return tx
}

// newPool opens a pool capped at a couple of connections; each test only ever
// holds one transaction.
func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	cfg, err := pgxpool.ParseConfig(requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewRestaurantTx: parse %s: %v", PostgresURLEnv, err)
	}
	cfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("testutil.NewRestaurantTx: open pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB opens the TEST_DATABASE_URL database through the pgx database/sql
// driver, the handle goose migrates with. Closed when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}
	return db
}

// MigratePostgres brings the TEST_DATABASE_URL schema up to date using the
// same path as "lucky migrate". It is a no-op when the variable is unset, so
// TestMain functions can call it unconditionally.
func MigratePostgres(ctx context.Context) error {
	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		return nil
	}

	db, err := database.Open(ctx, url)
	if err != nil {
		return fmt.Errorf("testutil.MigratePostgres: %w", err)
	}
	defer db.Close()

	if db.Driver != database.DriverPostgres {
		return fmt.Errorf("testutil.MigratePostgres: %s must be a postgres URL, got driver %s", PostgresURLEnv, db.Driver)
	}
	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("testutil.MigratePostgres: %w", err)
	}
	return nil
}

// requireDSN returns TEST_DATABASE_URL, skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(PostgresURLEnv)
	if dsn == "" {
		t.Skip(PostgresURLEnv + " not set; skipping Postgres integration test")
	}
	return dsn
}

// NewSQLite opens a fresh, fully migrated SQLite store in a temp directory.
// Each call gets its own file, so tests never see each other's rows.
// The store is closed automatically when the test finishes.
func NewSQLite(t testing.TB) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "lucky.db"))
	if err != nil {
		t.Fatalf("testutil.NewSQLite: open: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("testutil.NewSQLite: migrate: %v", err)
	}
	return db
}
