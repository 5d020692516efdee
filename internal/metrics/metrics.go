// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes.
const (
	LookupHit          = "hit"
	LookupUnknownTitle = "unknown_title"
	LookupInvalid      = "invalid"
)

// Login results.
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginError              = "error"
)

// Signup results.
const (
	SignupCreated = "created"
	SignupExists  = "exists"
	SignupError   = "error"
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

	// Recommendation Metrics
	RecommendLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_lookups_total",
			Help: "Recommendation lookups by outcome",
		},
		[]string{"outcome"},
	)

	// Lookups are a row scan plus a sort over N entries.
	RecommendLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_lookup_duration_seconds",
			Help:    "Time to rank one row of the similarity matrix",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	ModelMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_movies",
			Help: "Number of movies in the loaded similarity model",
		},
	)

	ModelVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_vocabulary_size",
			Help: "Vocabulary size the loaded model was built with",
		},
	)

	ModelLoadedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_loaded_timestamp_seconds",
			Help: "Unix time the similarity model was loaded",
		},
	)

	// Account Metrics
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	Signups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_signups_total",
			Help: "Signup attempts by result",
		},
		[]string{"result"},
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

// RecordRateLimitHit counts a request rejected by a rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordLookup records one recommendation lookup.
func RecordLookup(outcome string, duration time.Duration) {
	RecommendLookups.WithLabelValues(outcome).Inc()
	if outcome != LookupInvalid {
		RecommendLookupDuration.Observe(duration.Seconds())
	}
}

// SetModelInfo publishes the shape of a freshly loaded model.
func SetModelInfo(movies, vocabulary int, loadedAt time.Time) {
	ModelMovies.Set(float64(movies))
	ModelVocabularySize.Set(float64(vocabulary))
	ModelLoadedTimestamp.Set(float64(loadedAt.Unix()))
}

// RecordLogin records a login attempt.
func RecordLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

// RecordSignup records a signup attempt.
func RecordSignup(result string) {
	Signups.WithLabelValues(result).Inc()
}
