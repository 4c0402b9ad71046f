// Package metrics exposes Prometheus instrumentation for recommendations,
// the cache, narration and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footfit_recommendations_total",
			Help: "Total number of recommendations produced",
		},
		[]string{"shoe_category", "cushioning"},
	)

	ValidationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footfit_validation_errors_total",
			Help: "Total number of out-of-domain input fields",
		},
		[]string{"field"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footfit_cache_lookups_total",
			Help: "Recommendation cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	NarrativesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footfit_narratives_total",
			Help: "LLM narrative attempts by provider and outcome",
		},
		[]string{"provider", "outcome"}, // "ok", "error", "unavailable"
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footfit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "footfit_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordRecommendation counts a produced recommendation
func RecordRecommendation(category, cushioning string) {
	RecommendationsTotal.WithLabelValues(category, cushioning).Inc()
}

// RecordValidationError counts one out-of-domain field
func RecordValidationError(field string) {
	ValidationErrorsTotal.WithLabelValues(field).Inc()
}

func RecordCacheHit() {
	CacheLookupsTotal.WithLabelValues("hit").Inc()
}

func RecordCacheMiss() {
	CacheLookupsTotal.WithLabelValues("miss").Inc()
}

// RecordNarrative counts a narration attempt
func RecordNarrative(provider, outcome string) {
	NarrativesTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordHTTPRequest records count and latency of one request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
