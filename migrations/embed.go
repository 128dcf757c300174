// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests, the migrate command, and server
// bootstrap. Each supported store has its own directory because the
// PostgreSQL and SQLite schemas differ in types and defaults.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// files holds all *.sql migration files embedded at compile time.
//
//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// For returns the migration files for the given goose dialect, rooted so
// they can be passed straight to goose.NewProvider.
func For(dialect goose.Dialect) (fs.FS, error) {
	var dir string
	switch dialect {
	case goose.DialectPostgres:
		dir = "postgres"
	case goose.DialectSQLite3:
		dir = "sqlite"
	default:
		return nil, fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
	return fs.Sub(files, dir)
}
