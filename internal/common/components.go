package common

const (
	ComponentEngine      = "engine"
	ComponentEventSource = "event-source"
	ComponentAggregator  = "aggregator"
	ComponentEntityStore = "entity-store"
	ComponentRPC         = "rpc"
	ComponentAPI         = "api"
	ComponentMetrics     = "metrics"
)

var AllComponents = map[string]struct{}{
	ComponentEngine:      {},
	ComponentEventSource: {},
	ComponentAggregator:  {},
	ComponentEntityStore: {},
	ComponentRPC:         {},
	ComponentAPI:         {},
	ComponentMetrics:     {},
}
