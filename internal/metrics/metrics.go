// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for recommendation operations.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}, // Brute-force scans over a few thousand items
		},
		[]string{"operation"},
	)

	RecommendResultCount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_result_count",
			Help:    "Number of results returned per operation",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"operation"},
	)

	// Snapshot Metrics
	SnapshotItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_items",
			Help: "Number of items in the serving snapshot",
		},
	)

	SnapshotDimension = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_vector_dimension",
			Help: "Feature vector dimension of the serving snapshot",
		},
	)

	SnapshotLoadedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_loaded_timestamp",
			Help: "Unix timestamp of the last successful snapshot swap",
		},
	)

	SnapshotLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_loads_total",
			Help: "Total number of snapshot load attempts by result",
		},
		[]string{"result"},
	)

	SnapshotLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_load_duration_seconds",
			Help:    "Duration of snapshot loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordRecommendation records one recommendation or suggest operation.
func RecordRecommendation(operation, outcome string, results int, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(operation, outcome).Inc()
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
	RecommendResultCount.WithLabelValues(operation).Observe(float64(results))
}

// RecordSnapshotLoad records a load attempt. Gauges are only updated when
// the load succeeded.
func RecordSnapshotLoad(items, dimension int, duration time.Duration, err error) {
	SnapshotLoadDuration.Observe(duration.Seconds())
	if err != nil {
		SnapshotLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	SnapshotLoadsTotal.WithLabelValues("success").Inc()
	SnapshotItems.Set(float64(items))
	SnapshotDimension.Set(float64(dimension))
	SnapshotLoadedTimestamp.SetToCurrentTime()
}

// RecordDBQuery records DuckDB query duration and errors.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordCacheLookup records a hit or miss for the named cache.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}

// RecordAPIRequest records API request metrics.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}
