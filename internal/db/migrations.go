package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/credora/indexer/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"

	// NoLimitMigrations indicates that there is no limit on the number of migrations to run.
	NoLimitMigrations = 0
)

// Migration is a single embedded SQL file with an Up section and an optional Down section.
type Migration struct {
	ID  string
	SQL string
}

// RunMigrationsDB executes every pending Up migration.
func RunMigrationsDB(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	return RunMigrationsDBExtended(log, db, migrations, migrate.Up, NoLimitMigrations)
}

// RunMigrationsDBExtended applies at most maxMigrations migrations in the given direction.
// Pass NoLimitMigrations to apply all of them.
func RunMigrationsDBExtended(
	log *logger.Logger,
	db *sql.DB,
	migrations []Migration,
	dir migrate.MigrationDirection,
	maxMigrations int,
) error {
	source, err := memorySource(migrations)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(source.Migrations))
	for _, m := range source.Migrations {
		ids = append(ids, m.Id)
	}

	log.Debugf("running migrations (max %d/%d): %s", maxMigrations, len(ids), strings.Join(ids, ", "))

	n, err := migrate.ExecMax(db, "sqlite3", source, dir, maxMigrations)
	if err != nil {
		return fmt.Errorf("error executing migrations (max %d/%d) %s: %w",
			maxMigrations, len(ids), strings.Join(ids, ", "), err)
	}

	log.Infof("successfully ran %d migrations", n)
	return nil
}

// memorySource splits each file on its Up marker. Text before the marker is the Down section.
func memorySource(migrations []Migration) (*migrate.MemoryMigrationSource, error) {
	source := &migrate.MemoryMigrationSource{Migrations: make([]*migrate.Migration, 0, len(migrations))}

	for _, m := range migrations {
		down, up, found := strings.Cut(m.SQL, upMarker)
		if !found {
			return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, upMarker)
		}

		if idx := strings.Index(down, downMarker); idx != -1 {
			down = down[idx+len(downMarker):]
		}

		source.Migrations = append(source.Migrations, &migrate.Migration{
			Id:   m.ID,
			Up:   []string{strings.TrimSpace(up)},
			Down: []string{strings.TrimSpace(down)},
		})
	}

	return source, nil
}
