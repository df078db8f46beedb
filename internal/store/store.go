// Package store implements the entity store on SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/credora/indexer/internal/db"
	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/internal/migrations"
	"github.com/credora/indexer/pkg/config"
	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/query"
	"github.com/credora/indexer/pkg/store"
	"github.com/russross/meddler"
)

// ErrChainMismatch is returned when the database was built from a different chain.
var ErrChainMismatch = errors.New("database was built from a different chain")

var (
	_ store.Store  = (*SQLiteStore)(nil)
	_ query.Reader = (*SQLiteStore)(nil)
)

// OperationLocker keeps maintenance out of an in-flight write.
type OperationLocker interface {
	AcquireOperationLock() func()
}

type noopLocker struct{}

func (noopLocker) AcquireOperationLock() func() { return func() {} }

// SQLiteStore persists entities and sync state in a single SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	log    *logger.Logger
	locker OperationLocker
}

// New wraps an already migrated database.
func New(database *sql.DB, log *logger.Logger) *SQLiteStore {
	return &SQLiteStore{
		db:     database,
		log:    log,
		locker: noopLocker{},
	}
}

// Open opens the database described by cfg and brings its schema up to date.
func Open(cfg config.DatabaseConfig, log *logger.Logger) (*SQLiteStore, error) {
	database, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(log, database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return New(database, log), nil
}

// SetOperationLocker makes every write hold a shared lock from l.
func (s *SQLiteStore) SetOperationLocker(l OperationLocker) {
	s.locker = l
}

// DB returns the underlying database handle.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Apply runs fn in a single transaction and advances the applied cursor to pos.
func (s *SQLiteStore) Apply(ctx context.Context, pos events.Position, fn func(tx store.Tx) error) (bool, error) {
	unlock := s.locker.AcquireOperationLock()
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := db.Rollback(tx); err != nil {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	state, err := getSyncState(tx)
	if err != nil {
		return false, err
	}

	if cursor, ok := state.Cursor(); ok && !cursor.Less(pos) {
		return false, nil
	}

	if err := fn(&sqlTx{tx: tx}); err != nil {
		db.TxRolledBackInc()
		return false, err
	}

	const advance = `
		UPDATE sync_state
		SET has_applied = 1, applied_block = ?, applied_log_index = ?, updated_at = ?
		WHERE id = 1
	`
	if _, err := tx.Exec(advance, pos.BlockNumber, pos.LogIndex, time.Now().Unix()); err != nil {
		db.TxRolledBackInc()
		return false, fmt.Errorf("failed to advance cursor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		db.TxRolledBackInc()
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	db.TxCommittedInc()

	return true, nil
}

// SaveCheckpoint stores the last block fully fetched from the source.
func (s *SQLiteStore) SaveCheckpoint(ctx context.Context, cp store.Checkpoint) error {
	unlock := s.locker.AcquireOperationLock()
	defer unlock()

	const query = `
		UPDATE sync_state
		SET last_fetched_block = ?, last_fetched_hash = ?, mode = ?, updated_at = ?
		WHERE id = 1
	`
	if _, err := s.db.ExecContext(ctx, query, cp.Block, cp.Hash.Hex(), cp.Mode, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}

	return nil
}

// SetChainID records chainID on a fresh database and rejects a database built from another chain.
func (s *SQLiteStore) SetChainID(ctx context.Context, chainID uint64) error {
	state, err := s.GetSyncState(ctx)
	if err != nil {
		return err
	}

	if state.ChainID != 0 {
		if state.ChainID != chainID {
			return fmt.Errorf("%w: stored %d, node reports %d", ErrChainMismatch, state.ChainID, chainID)
		}
		return nil
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE sync_state SET chain_id = ? WHERE id = 1`, chainID); err != nil {
		return fmt.Errorf("failed to save chain id: %w", err)
	}

	return nil
}

// GetSyncState returns the engine bookkeeping.
func (s *SQLiteStore) GetSyncState(ctx context.Context) (*store.SyncState, error) {
	return getSyncState(s.db)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func getSyncState(q meddler.DB) (*store.SyncState, error) {
	var state store.SyncState
	if err := meddler.QueryRow(q, &state, `SELECT * FROM sync_state WHERE id = 1`); err != nil {
		return nil, fmt.Errorf("failed to query sync state: %w", err)
	}

	return &state, nil
}

// queryOne loads a single row into dst. It reports false when no row matched.
func queryOne(q meddler.DB, dst any, query string, args ...any) (bool, error) {
	err := meddler.QueryRow(q, dst, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
