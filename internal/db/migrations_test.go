package db

import (
	"path/filepath"
	"testing"

	"github.com/credora/indexer/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/require"
)

const testMigration = `-- +migrate Down
DROP TABLE IF EXISTS widget;

-- +migrate Up
CREATE TABLE widget (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
`

func TestRunMigrationsDB(t *testing.T) {
	t.Parallel()

	sqlDB, err := NewSQLiteDB(filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	migrations := []Migration{{ID: "001_widget.sql", SQL: testMigration}}
	log := logger.NewNopLogger()

	require.NoError(t, RunMigrationsDB(log, sqlDB, migrations))
	// applying twice is a no-op
	require.NoError(t, RunMigrationsDB(log, sqlDB, migrations))

	_, err = sqlDB.Exec(`INSERT INTO widget (name) VALUES ('a')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrationsDBExtended(log, sqlDB, migrations, migrate.Down, NoLimitMigrations))
	_, err = sqlDB.Exec(`INSERT INTO widget (name) VALUES ('a')`)
	require.Error(t, err)
}

func TestRunMigrationsDB_MissingSeparator(t *testing.T) {
	t.Parallel()

	sqlDB, err := NewSQLiteDB(filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	err = RunMigrationsDB(logger.NewNopLogger(), sqlDB, []Migration{{ID: "bad.sql", SQL: "CREATE TABLE x (id INTEGER);"}})
	require.ErrorContains(t, err, "missing '-- +migrate Up' separator")
}
