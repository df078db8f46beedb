package source

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	finalizedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "credora_source_finalized_block",
			Help: "The highest block the event source treats as final",
		},
	)

	logsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credora_source_logs_fetched_total",
			Help: "Total number of logs returned by eth_getLogs",
		},
	)

	logsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credora_source_logs_dropped_total",
			Help: "Total number of logs dropped before reaching the engine",
		},
		[]string{"reason"},
	)

	rangeSplits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credora_source_range_splits_total",
			Help: "Total number of eth_getLogs ranges narrowed after a too many results error",
		},
	)
)

func FinalizedBlockSet(block uint64) {
	finalizedBlock.Set(float64(block))
}

func LogsFetchedInc(count int) {
	logsFetched.Add(float64(count))
}

func LogsDroppedInc(reason string) {
	logsDropped.WithLabelValues(reason).Inc()
}

func RangeSplitInc() {
	rangeSplits.Inc()
}
