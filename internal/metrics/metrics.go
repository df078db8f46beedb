package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engine metrics
	eventsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credora_indexer_events_applied_total",
			Help: "Total number of events applied to the entity store",
		},
		[]string{"kind"},
	)

	eventsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credora_indexer_events_skipped_total",
			Help: "Total number of redelivered events skipped because they were already applied",
		},
	)

	eventApplyTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "credora_indexer_event_apply_duration_seconds",
			Help:    "Duration of a single event transaction",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	applyRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credora_indexer_apply_retries_total",
			Help: "Total number of retried event transactions",
		},
		[]string{"kind"},
	)

	LastAppliedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "credora_indexer_last_applied_block",
			Help: "Block number of the last applied event",
		},
	)

	LastFetchedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "credora_indexer_last_fetched_block",
			Help: "The last block fully fetched from the event source",
		},
	)

	BlocksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credora_indexer_blocks_processed_total",
			Help: "Total number of blocks processed",
		},
	)

	BatchProcessingTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "credora_indexer_batch_processing_duration_seconds",
			Help:    "Time taken to apply a batch of blocks",
			Buckets: prometheus.DefBuckets,
		},
	)

	IndexingRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "credora_indexer_indexing_rate_blocks_per_second",
			Help: "Current indexing rate in blocks per second",
		},
	)

	// Handler metrics
	handlerWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credora_indexer_handler_warnings_total",
			Help: "Total number of non-fatal anomalies found while applying events",
		},
		[]string{"kind", "reason"},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "credora_indexer_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credora_indexer_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "credora_indexer_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "credora_indexer_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "credora_indexer_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func EventAppliedInc(kind string) {
	eventsApplied.WithLabelValues(kind).Inc()
}

func EventSkippedInc() {
	eventsSkipped.Inc()
}

func EventApplyDuration(kind string, duration time.Duration) {
	eventApplyTime.WithLabelValues(kind).Observe(duration.Seconds())
}

func ApplyRetryInc(kind string) {
	applyRetries.WithLabelValues(kind).Inc()
}

func HandlerWarningInc(kind, reason string) {
	handlerWarnings.WithLabelValues(kind, reason).Inc()
}

func LastAppliedBlockSet(blockNum uint64) {
	LastAppliedBlock.Set(float64(blockNum))
}

func LastFetchedBlockSet(blockNum uint64) {
	LastFetchedBlock.Set(float64(blockNum))
}

func BlocksProcessedInc(count uint64) {
	BlocksProcessed.Add(float64(count))
}

func BatchProcessingTimeLog(duration time.Duration) {
	BatchProcessingTime.Observe(duration.Seconds())
}

func IndexingRateLog(rate float64) {
	IndexingRate.Set(rate)
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)
}

// UpdateSystemMetrics updates runtime system metrics.
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
