package database

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/pkordes/lucky/migrations"
)

// provider builds a goose provider for the store's dialect and migration set.
func (d *DB) provider() (*goose.Provider, error) {
	fsys, err := migrations.For(d.Dialect())
	if err != nil {
		return nil, err
	}
	p, err := goose.NewProvider(d.Dialect(), d.sql, fsys)
	if err != nil {
		return nil, fmt.Errorf("database: create goose provider: %w", err)
	}
	return p, nil
}

// Migrate applies every pending migration.
func (d *DB) Migrate(ctx context.Context) ([]*goose.MigrationResult, error) {
	p, err := d.provider()
	if err != nil {
		return nil, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("database.Migrate: %w", err)
	}
	return results, nil
}

// MigrateDown rolls back the most recently applied migration.
func (d *DB) MigrateDown(ctx context.Context) (*goose.MigrationResult, error) {
	p, err := d.provider()
	if err != nil {
		return nil, err
	}
	result, err := p.Down(ctx)
	if err != nil {
		return result, fmt.Errorf("database.MigrateDown: %w", err)
	}
	return result, nil
}

// MigrationStatus reports each known migration and whether it is applied.
func (d *DB) MigrationStatus(ctx context.Context) ([]*goose.MigrationStatus, error) {
	p, err := d.provider()
	if err != nil {
		return nil, err
	}
	status, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("database.MigrationStatus: %w", err)
	}
	return status, nil
}
