package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	txOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credora_db_transactions_total",
			Help: "Total number of entity store transactions by outcome",
		},
		[]string{"outcome"},
	)

	dbSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "credora_db_size_bytes",
			Help: "Database size in bytes including WAL and shared memory files",
		},
	)

	maintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credora_db_maintenance_runs_total",
			Help: "Total number of maintenance runs by outcome",
		},
		[]string{"outcome"},
	)

	maintenanceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "credora_db_maintenance_duration_seconds",
			Help:    "Duration of maintenance runs",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		},
	)

	maintenanceReclaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credora_db_maintenance_reclaimed_bytes_total",
			Help: "Total bytes reclaimed by maintenance",
		},
	)

	walCheckpoints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credora_db_wal_checkpoints_total",
			Help: "Total number of WAL checkpoints by mode",
		},
		[]string{"mode"},
	)

	vacuumRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credora_db_vacuum_runs_total",
			Help: "Total number of completed VACUUM operations",
		},
	)
)

func TxCommittedInc() {
	txOutcomes.WithLabelValues("commit").Inc()
}

func TxRolledBackInc() {
	txOutcomes.WithLabelValues("rollback").Inc()
}

// DBSizeLog records the current size of the database at dbPath.
func DBSizeLog(dbPath string) error {
	size, err := DBTotalSize(dbPath)
	if err != nil {
		return err
	}
	dbSize.Set(float64(size))

	return nil
}

func MaintenanceRunInc(success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	maintenanceRuns.WithLabelValues(outcome).Inc()
}

func MaintenanceDurationLog(d time.Duration) {
	maintenanceDuration.Observe(d.Seconds())
}

func MaintenanceReclaimedAdd(bytes int64) {
	maintenanceReclaimed.Add(float64(bytes))
}

func WALCheckpointInc(mode string) {
	walCheckpoints.WithLabelValues(mode).Inc()
}

func VacuumRunInc() {
	vacuumRuns.Inc()
}
