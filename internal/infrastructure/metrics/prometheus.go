// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tubewatch"

var (
	// CacheOperationsTotal tracks cache operations.
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	//   - backend: redis, memory
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "backend"},
	)

	// CacheBackendState tracks the failover state of the shared cache
	// backend (0=connected, 1=degraded, 2=reconnecting).
	CacheBackendState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_backend_state",
			Help:      "Current state of the shared cache backend",
		},
	)

	// UpstreamRequestsTotal tracks calls to the video platform API.
	// Labels:
	//   - endpoint: videos, search, channels
	//   - status: HTTP status code, or transport_error
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream API requests",
		},
		[]string{"endpoint", "status"},
	)

	// FeedPagesFetched tracks how many upstream pages a single feed
	// request needed before the requested result count was met.
	FeedPagesFetched = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_pages_fetched",
			Help:      "Upstream pages fetched per feed request",
			Buckets:   []float64{1, 2, 3, 4, 5},
		},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache backend constants.
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// Upstream status constants.
const (
	UpstreamStatusTransportError = "transport_error"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
