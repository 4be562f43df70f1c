// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// AHP Metrics
	AHPEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ahp_evaluations_total",
			Help: "Total number of pairwise matrix evaluations",
		},
		[]string{"outcome"}, // "consistent", "inconsistent", "invalid"
	)

	AHPConsistencyRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ahp_consistency_ratio",
			Help:    "Consistency ratio of evaluated matrices",
			Buckets: []float64{0.01, 0.025, 0.05, 0.075, 0.1, 0.15, 0.2, 0.3, 0.5, 1},
		},
	)

	AHPMatrixSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ahp_matrix_size",
			Help:    "Order of evaluated pairwise matrices",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
	)

	// Catalog Metrics
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests sent to the car catalog",
		},
		[]string{"operation", "status_code"},
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Car catalog request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CatalogRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_retries_total",
			Help: "Total number of retried car catalog requests",
		},
		[]string{"operation"},
	)

	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total number of car catalog cache hits",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Total number of car catalog cache misses",
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

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Store Metrics
	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_value_log_gc_runs_total",
			Help: "Total number of value log garbage collection passes",
		},
		[]string{"result"}, // "rewritten", "noop", "error"
	)
)

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

// RecordAHPEvaluation records one successful matrix evaluation.
func RecordAHPEvaluation(size int, cr float64, consistent bool) {
	outcome := "inconsistent"
	if consistent {
		outcome = "consistent"
	}
	AHPEvaluations.WithLabelValues(outcome).Inc()
	AHPConsistencyRatio.Observe(cr)
	AHPMatrixSize.Observe(float64(size))
}

// RecordAHPRejected records a matrix that failed validation.
func RecordAHPRejected() {
	AHPEvaluations.WithLabelValues("invalid").Inc()
}

// RecordCatalogRequest records one upstream attempt. A zero status means
// the request failed before a response arrived.
func RecordCatalogRequest(operation string, status int, duration time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	CatalogRequests.WithLabelValues(operation, code).Inc()
	CatalogRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCatalogRetry records a retried upstream attempt.
func RecordCatalogRetry(operation string) {
	CatalogRetries.WithLabelValues(operation).Inc()
}

// RecordCatalogCache records a cache lookup.
func RecordCatalogCache(hit bool) {
	if hit {
		CatalogCacheHits.Inc()
	} else {
		CatalogCacheMisses.Inc()
	}
}

// RecordCircuitBreakerTransition records a state change of a breaker. States
// use the gobreaker names: "closed", "half-open", "open".
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
}

// RecordCircuitBreakerRequest records the result of a call through a breaker.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordStoreGC records a value log GC pass.
func RecordStoreGC(result string) {
	StoreGCRuns.WithLabelValues(result).Inc()
}

func stateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
