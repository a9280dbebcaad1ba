// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors across cache and rate limit paths.
	RedisErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors",
	})

	// CacheHits counts cache hits by cache key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_hits_total",
		Help: "Total number of cache hits by key prefix",
	}, []string{"prefix"})

	// CacheMisses counts cache misses by cache key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_misses_total",
		Help: "Total number of cache misses by key prefix",
	}, []string{"prefix"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RelationToggles counts relationship toggles by kind and resulting state.
	RelationToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_relation_toggles_total",
		Help: "Total number of relationship toggles by kind and resulting state",
	}, []string{"kind", "state"})

	// ImageUploads counts image uploads by outcome.
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_image_uploads_total",
		Help: "Total number of image uploads by outcome",
	}, []string{"outcome"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

// RecordToggle increments the relation toggle counter. State is "on" when a
// row was created and "off" when it was removed.
func RecordToggle(kind string, active bool) {
	state := "off"
	if active {
		state = "on"
	}
	RelationToggles.WithLabelValues(kind, state).Inc()
}
