// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package metrics defines the Prometheus metrics exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

var (
	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_recommendations_total",
			Help: "Total number of recommendation runs by seed source",
		},
		[]string{"seed_source"}, // "likes", "default"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommendation_duration_seconds",
			Help:    "End-to-end duration of a recommendation run",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommendation_results",
			Help:    "Number of movies returned per recommendation run",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
		},
	)

	EmptyRecommendations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelmatch_recommendations_empty_total",
			Help: "Recommendation runs that produced no results",
		},
	)

	// Similarity Index Metrics
	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_index_build_duration_seconds",
			Help:    "Duration of similarity index construction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_catalog_size",
			Help: "Number of movies in the last built similarity index",
		},
	)

	IndexCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_index_cache_total",
			Help: "Similarity index cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Profile Metrics
	LikeTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_like_toggles_total",
			Help: "Like toggles by resulting action",
		},
		[]string{"action"}, // "liked", "unliked"
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelmatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLikeToggle records the outcome of a like toggle.
func RecordLikeToggle(liked bool) {
	action := "unliked"
	if liked {
		action = "liked"
	}
	LikeTogglesTotal.WithLabelValues(action).Inc()
}

// RecommendObserver forwards engine timings to Prometheus.
type RecommendObserver struct{}

func (RecommendObserver) ObserveIndexBuild(entries int, d time.Duration) {
	IndexBuildDuration.Observe(d.Seconds())
	CatalogSize.Set(float64(entries))
}

func (RecommendObserver) ObserveIndexCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	IndexCacheTotal.WithLabelValues(result).Inc()
}

func (RecommendObserver) ObserveRecommendation(source recommend.SeedSource, results int, d time.Duration) {
	RecommendationsTotal.WithLabelValues(string(source)).Inc()
	RecommendationDuration.Observe(d.Seconds())
	RecommendationResults.Observe(float64(results))
	if results == 0 {
		EmptyRecommendations.Inc()
	}
}

var _ recommend.Observer = RecommendObserver{}
