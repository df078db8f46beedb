// Package migrations holds the entity store schema.
package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/credora/indexer/internal/db"
	"github.com/credora/indexer/internal/logger"
)

//go:embed 001_entities.sql
var mig001 string

//go:embed 002_sync_state.sql
var mig002 string

// All returns the schema migrations in order.
func All() []db.Migration {
	return []db.Migration{
		{ID: "001_entities.sql", SQL: mig001},
		{ID: "002_sync_state.sql", SQL: mig002},
	}
}

// RunMigrations brings the entity store schema up to date.
func RunMigrations(log *logger.Logger, database *sql.DB) error {
	return db.RunMigrationsDB(log, database, All())
}
