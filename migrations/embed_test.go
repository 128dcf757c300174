package migrations_test

import (
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/lucky/migrations"
)

func TestFor_KnownDialects(t *testing.T) {
	for _, d := range []goose.Dialect{goose.DialectPostgres, goose.DialectSQLite3} {
		t.Run(string(d), func(t *testing.T) {
			fsys, err := migrations.For(d)
			require.NoError(t, err)

			matches, err := fs.Glob(fsys, "*.sql")
			require.NoError(t, err)
			assert.Contains(t, matches, "00001_create_restaurants.sql")
		})
	}
}

func TestFor_UnknownDialect(t *testing.T) {
	_, err := migrations.For(goose.DialectMySQL)

	require.Error(t, err)
}
