package testutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/lucky/internal/database"
	"github.com/pkordes/lucky/testutil"
)

func TestNewSQLite_StartsEmptyAndMigrated(t *testing.T) {
	db := testutil.NewSQLite(t)

	assert.Equal(t, database.DriverSQLite, db.Driver)

	n, err := db.Restaurants.Count(context.Background())
	require.NoError(t, err, "restaurants table must exist")
	assert.Zero(t, n)
}

func TestMigratePostgres_NoopWithoutURL(t *testing.T) {
	t.Setenv(testutil.PostgresURLEnv, "")

	assert.NoError(t, testutil.MigratePostgres(context.Background()))
}

func TestMigratePostgres_RejectsSQLiteURL(t *testing.T) {
	t.Setenv(testutil.PostgresURLEnv, "sqlite::memory:")

	err := testutil.MigratePostgres(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres URL")
}
