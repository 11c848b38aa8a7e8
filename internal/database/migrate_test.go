package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrationsCreatesSchema(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "settle.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)

	require.NoError(t, RunMigrations(dbPath, migrations))
	// second run hits the no-change path
	require.NoError(t, RunMigrations(dbPath, migrations))

	db, err := Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	for _, table := range []string{
		"settle_items", "settle_item_states", "block_daily",
		"pending_corrections", "match_logs", "accounts",
	} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		require.Equal(t, table, name)
	}
}
