package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query cache Prometheus metrics.
var (
	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "query_cache_total",
			Help:      "Query cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	QueryCacheInvalidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "query_cache_invalidations_total",
			Help:      "Query cache entries removed by invalidation",
		},
		[]string{"scope"}, // "user" / "all"
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers Prometheus query cache metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueryCacheTotal)
	prometheus.MustRegister(QueryCacheInvalidationsTotal)
	queryMetricsRegistered = true
}
