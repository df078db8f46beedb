// Package testutil holds helpers shared by package tests.
package testutil

import (
	"database/sql"
	"path"
	"testing"

	"github.com/credora/indexer/internal/db"
	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/internal/migrations"
	"github.com/credora/indexer/pkg/config"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates a migrated SQLite database in a temporary directory.
func NewTestDB(t *testing.T, dbName string) *sql.DB {
	t.Helper()

	dbConfig := config.DatabaseConfig{Path: path.Join(t.TempDir(), dbName)}
	dbConfig.ApplyDefaults()

	database, err := db.NewSQLiteDBFromConfig(dbConfig)
	require.NoError(t, err)

	require.NoError(t, migrations.RunMigrations(logger.NewNopLogger(), database))

	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}
