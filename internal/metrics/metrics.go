// Marquee - Age-Group Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors are package globals registered with promauto so any package can
// record without plumbing a registry through constructors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Dataset
	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Time spent reading the MovieLens files",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	DatasetRowsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows_loaded",
			Help: "Rows kept from each dataset file after filtering",
		},
		[]string{"file"},
	)

	DatasetRowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_rows_dropped_total",
			Help: "Rows dropped on load",
		},
		[]string{"file", "reason"},
	)

	// Genre aggregation
	GenreAggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genre_aggregation_duration_seconds",
			Help:    "Time spent computing per-genre mean ratings for an age bucket",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scorer"},
	)

	// DuckDB
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
		[]string{"operation", "table"},
	)

	// KOBIS
	KOBISRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kobis_requests_total",
			Help: "Requests sent to the KOBIS open API",
		},
		[]string{"endpoint", "result"}, // result: ok, http_error, fault, error
	)

	KOBISRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kobis_request_duration_seconds",
			Help:    "KOBIS request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	BoxOfficeFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "box_office_fetches_total",
			Help: "Box office list fetches by outcome",
		},
		[]string{"outcome"}, // ok, empty, aborted
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
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

	// Movie detail cache
	DetailCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "detail_cache_hits_total",
			Help: "Movie genre lookups served from the local cache",
		},
	)

	DetailCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "detail_cache_misses_total",
			Help: "Movie genre lookups that went to KOBIS",
		},
	)

	GenreScoreCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genre_score_cache_results_total",
			Help: "Bucket genre score lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// Recommendations
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	ExportWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "export_writes_total",
			Help: "CSV exports written",
		},
		[]string{"result"},
	)

	// API
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordDatasetLoad records a completed load and the kept row counts.
func RecordDatasetLoad(duration time.Duration, movies, ratings, users int) {
	DatasetLoadDuration.Observe(duration.Seconds())
	DatasetRowsLoaded.WithLabelValues("movies").Set(float64(movies))
	DatasetRowsLoaded.WithLabelValues("ratings").Set(float64(ratings))
	DatasetRowsLoaded.WithLabelValues("users").Set(float64(users))
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordKOBISRequest records one call to a KOBIS endpoint.
func RecordKOBISRequest(endpoint, result string, duration time.Duration) {
	KOBISRequestsTotal.WithLabelValues(endpoint, result).Inc()
	KOBISRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
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
