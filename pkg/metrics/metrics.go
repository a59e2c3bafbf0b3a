package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ContextOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_context_operations_total",
			Help: "Context provider operations",
		},
		[]string{"op"}, // created|miss|expired|forced_expiry|swept|recovered
	)
	ContextsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_contexts_stored",
			Help: "Number of contexts currently held by the provider (including expired, not yet swept)",
		},
	)
)

var (
	CartOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Cart orchestrator operations by result",
		},
		[]string{"op", "result"}, // result: ok|not_found|rule_violation|error
	)
	RuleViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_rule_violations_total",
			Help: "Rejected mutations by business rule",
		},
		[]string{"rule"},
	)
)

var (
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_events_published_total",
			Help: "Cart events written to the broker",
		},
		[]string{"type"},
	)
	EventsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_events_failed_total",
			Help: "Cart events that failed to publish",
		},
		[]string{"type"},
	)
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 400, 800},
		},
		[]string{"method", "path"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_operations_total",
			Help: "Product cache operations",
		},
		[]string{"op"}, // hit|miss|expired|evicted
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_cache_size",
			Help: "Products currently held by the cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует все метрики в default registry; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ContextOps, ContextsStored,
			CartOps, RuleViolations,
			EventsPublished, EventsFailed,
			HTTPRequests, HTTPDuration,
			CacheOps, CacheSize,
		)
	})
}
