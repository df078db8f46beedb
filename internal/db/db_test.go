package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/credora/indexer/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDBFromConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		journalMode string
		expected    string
	}{
		{name: "WAL", journalMode: "WAL", expected: "wal"},
		{name: "lowercase truncate", journalMode: "truncate", expected: "truncate"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db"), JournalMode: tc.journalMode}
			cfg.ApplyDefaults()

			sqlDB, err := NewSQLiteDBFromConfig(cfg)
			require.NoError(t, err)
			defer sqlDB.Close()

			var mode string
			require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode))
			require.Equal(t, tc.expected, mode)
		})
	}
}

func TestRollback_IgnoresFinishedTx(t *testing.T) {
	t.Parallel()

	sqlDB, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.NoError(t, Rollback(tx))
	require.ErrorIs(t, tx.Rollback(), sql.ErrTxDone)
}

func TestDBTotalSize(t *testing.T) {
	testCases := []struct {
		name       string
		files      map[string]string // suffix -> content
		expectSize int64
	}{
		{
			name:       "MainOnly",
			files:      map[string]string{"": "main-db-content"},
			expectSize: int64(len("main-db-content")),
		},
		{
			name: "WithWALAndSHM",
			files: map[string]string{
				"":     "main-db",
				"-wal": "wal-content",
				"-shm": "shm-content",
			},
			expectSize: int64(len("main-db") + len("wal-content") + len("shm-content")),
		},
		{
			name:       "MissingFiles",
			files:      map[string]string{},
			expectSize: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mainPath := filepath.Join(t.TempDir(), "main.db")
			for suffix, content := range tc.files {
				require.NoError(t, os.WriteFile(mainPath+suffix, []byte(content), 0o600))
			}

			size, err := DBTotalSize(mainPath)
			require.NoError(t, err)
			require.Equal(t, tc.expectSize, size)
		})
	}
}
