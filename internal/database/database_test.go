package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := Open(DriverSQLite, "file::memory:", time.Second)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, DriverSQLite))
	// Idempotent.
	require.NoError(t, Migrate(ctx, db, DriverSQLite))

	var n int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('profiles', 'history')").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMigrateUnknownDriver(t *testing.T) {
	db, err := Open(DriverSQLite, "file::memory:", time.Second)
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, Migrate(context.Background(), db, "postgres"))
}

func TestOpenRejectsBadMySQLDSN(t *testing.T) {
	_, err := Open(DriverMySQL, "not a dsn", time.Second)
	assert.Error(t, err)
}
