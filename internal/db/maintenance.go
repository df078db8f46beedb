package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/pkg/config"
)

// Maintainer checkpoints the WAL and vacuums the database in the background.
// Writers hold the operation lock (shared) for the length of a transaction and
// maintenance takes it exclusively, so it never runs in the middle of an event.
type Maintainer struct {
	db     *sql.DB
	config *config.MaintenanceConfig
	dbPath string
	log    *logger.Logger

	// readers = writes to the store, writer = maintenance
	opLock sync.RWMutex

	mu      sync.Mutex
	runs    uint64
	lastRun time.Time
	lastErr error
}

// NewMaintainer creates a maintainer. A nil config disables background runs.
func NewMaintainer(dbPath string, database *sql.DB, cfg *config.MaintenanceConfig, log *logger.Logger) *Maintainer {
	return &Maintainer{
		db:     database,
		config: cfg,
		dbPath: dbPath,
		log:    log,
	}
}

func (m *Maintainer) enabled() bool {
	return m.config != nil && m.config.Enabled
}

// Run performs maintenance every check interval until ctx is cancelled.
// It returns immediately when maintenance is disabled.
func (m *Maintainer) Run(ctx context.Context) error {
	if !m.enabled() {
		m.log.Info("Background maintenance is disabled")
		return nil
	}

	if m.config.VacuumOnStartup {
		m.log.Info("Running startup maintenance")
		if err := m.RunMaintenance(ctx); err != nil {
			m.log.Warnf("Startup maintenance failed: %v", err)
		}
	}

	m.log.Infof("Background maintenance started - interval: %v, checkpoint mode: %s",
		m.config.CheckInterval.Duration, m.config.WALCheckpointMode)

	ticker := time.NewTicker(m.config.CheckInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("Background maintenance stopped")
			return nil
		case <-ticker.C:
			if err := m.RunMaintenance(ctx); err != nil {
				m.log.Warnf("Periodic maintenance failed: %v", err)
			}
		}
	}
}

// AcquireOperationLock blocks maintenance until the returned unlock function is called.
func (m *Maintainer) AcquireOperationLock() func() {
	m.opLock.RLock()
	return m.opLock.RUnlock
}

// RunMaintenance checkpoints the WAL and vacuums the database with exclusive access.
func (m *Maintainer) RunMaintenance(ctx context.Context) error {
	start := time.Now()

	m.opLock.Lock()
	defer m.opLock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	initialSize, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnf("Failed to get initial DB size: %v", err)
	}

	var maintenanceErr error
	if err := m.walCheckpoint(ctx); err != nil {
		maintenanceErr = fmt.Errorf("WAL checkpoint failed: %w", err)
	}
	if err := m.vacuum(ctx); err != nil && maintenanceErr == nil {
		maintenanceErr = fmt.Errorf("VACUUM failed: %w", err)
	}

	finalSize, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnf("Failed to get final DB size: %v", err)
	}

	m.mu.Lock()
	m.runs++
	m.lastRun = time.Now()
	m.lastErr = maintenanceErr
	m.mu.Unlock()

	MaintenanceDurationLog(time.Since(start))

	if maintenanceErr != nil {
		MaintenanceRunInc(false)
		return maintenanceErr
	}
	MaintenanceRunInc(true)

	if initialSize > finalSize {
		MaintenanceReclaimedAdd(initialSize - finalSize)
	}
	dbSize.Set(float64(finalSize))

	m.log.Infow("maintenance completed",
		"duration", time.Since(start),
		"size_before", initialSize,
		"size_after", finalSize,
	)

	return nil
}

// Stats returns the number of completed runs, when the last one finished and its error.
func (m *Maintainer) Stats() (runs uint64, lastRun time.Time, lastErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.runs, m.lastRun, m.lastErr
}

func (m *Maintainer) walCheckpoint(ctx context.Context) error {
	var mode string
	if err := m.db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		return fmt.Errorf("failed to check journal mode: %w", err)
	}
	if !strings.EqualFold(mode, "wal") {
		m.log.Debug("Database not in WAL mode, skipping WAL checkpoint")
		return nil
	}

	checkpointMode := strings.ToUpper(m.checkpointMode())

	var busy, logFrames, checkpointed int
	query := fmt.Sprintf("PRAGMA wal_checkpoint(%s)", checkpointMode)
	if err := m.db.QueryRowContext(ctx, query).Scan(&busy, &logFrames, &checkpointed); err != nil {
		return fmt.Errorf("failed to execute WAL checkpoint: %w", err)
	}

	WALCheckpointInc(strings.ToLower(checkpointMode))
	if busy > 0 {
		m.log.Warnf("WAL checkpoint left %d busy pages", busy)
	}
	m.log.Debugw("WAL checkpoint complete", "mode", checkpointMode, "log_frames", logFrames, "checkpointed", checkpointed)

	return nil
}

func (m *Maintainer) checkpointMode() string {
	if m.config == nil || m.config.WALCheckpointMode == "" {
		return "TRUNCATE"
	}
	return m.config.WALCheckpointMode
}

func (m *Maintainer) vacuum(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, "VACUUM"); err != nil {
		if strings.Contains(err.Error(), "database is locked") {
			return fmt.Errorf("cannot vacuum: database is locked (retry later)")
		}
		return fmt.Errorf("vacuum failed: %w", err)
	}

	VacuumRunInc()
	return nil
}
