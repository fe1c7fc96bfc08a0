// Recommender - Collaborative Filtering Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommender

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation pipeline, result cache, data source, HTTP API and
// circuit breaker instrumentation.

var (
	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by operation and result source",
		},
		[]string{"operation", "source"}, // source: "cache", "computed", "fallback"
	)

	RecommendComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_compute_duration_seconds",
			Help:    "Duration of a full recommendation computation (load, matrix, similarity, rank)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	RecommendFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fallback_total",
			Help: "Total number of popularity fallbacks by reason",
		},
		[]string{"reason"},
	)

	RecommendMatrixUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_matrix_users",
			Help: "Number of users in the most recently built interaction matrix",
		},
	)

	RecommendMatrixItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_matrix_items",
			Help: "Number of items in the most recently built interaction matrix",
		},
	)

	RecommendDataSourceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_data_source_errors_total",
			Help: "Total number of data source reads that failed and were treated as empty",
		},
		[]string{"source"}, // "order_items", "interactions", "catalog", "purchase_volume"
	)

	// Result Cache Metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cache_operations_total",
			Help: "Total number of result cache operations",
		},
		[]string{"operation", "result"}, // operation: get/set/delete, result: hit/miss/ok/error
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of data provider queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of data provider query errors",
		},
		[]string{"operation", "table"},
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recalculation Event Metrics
	RecalcEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_recalc_events_total",
			Help: "Total number of recalculation events consumed",
		},
		[]string{"result"}, // "processed", "unknown_user", "invalid", "failed"
	)
)

// RecordRecommendation records a completed recommendation request.
func RecordRecommendation(operation, source string) {
	RecommendRequestsTotal.WithLabelValues(operation, source).Inc()
}

// RecordComputation records one pipeline run and its matrix shape.
func RecordComputation(duration time.Duration, users, items int) {
	RecommendComputeDuration.Observe(duration.Seconds())
	RecommendMatrixUsers.Set(float64(users))
	RecommendMatrixItems.Set(float64(items))
}

// RecordFallback records a popularity fallback.
func RecordFallback(reason string) {
	RecommendFallbackTotal.WithLabelValues(reason).Inc()
}

// RecordDataSourceError records a data source read that degraded to empty.
func RecordDataSourceError(source string) {
	RecommendDataSourceErrors.WithLabelValues(source).Inc()
}

// RecordCacheOperation records a result cache get, set or delete.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecalcEvent records the outcome of a consumed recalculation event.
func RecordRecalcEvent(result string) {
	RecalcEventsTotal.WithLabelValues(result).Inc()
}
