// Package metrics holds the Prometheus collectors for serving and batch runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Authentication outcomes.
const (
	AuthAuthenticated = "authenticated"
	AuthRejected      = "rejected"
	AuthAnonymous     = "anonymous"
)

// Recommendation sources.
const (
	SourcePrecomputed = "precomputed"
	SourceLive        = "live"
)

var (
	// RecommendationsServedTotal counts recommendation lists returned, by source.
	RecommendationsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_recommendations_served_total",
			Help: "Total number of recommendation lists served",
		},
		[]string{"source"},
	)

	// RecommendationFallbacksTotal counts lists that ignored the distance filter because
	// no candidate was in range.
	RecommendationFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "job_recommendation_fallbacks_total",
			Help: "Total number of recommendation lists that fell back to similarity ranking",
		},
	)

	// BatchUsersTotal counts users processed by batch runs, by job and outcome.
	BatchUsersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_recommender_batch_users_total",
			Help: "Total number of users processed by batch runs",
		},
		[]string{"job", "outcome"},
	)

	// AuthAttemptsTotal counts requests seen by the auth middleware, by method and
	// outcome. Method is "none" for anonymous and rejected requests.
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_recommender_auth_attempts_total",
			Help: "Total number of requests by authentication method and outcome",
		},
		[]string{"method", "outcome"},
	)

	// ScoringDuration tracks how long feature building plus probability scoring takes
	// for one user.
	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "job_scoring_duration_seconds",
			Help:    "Duration of per-user candidate scoring in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)

func RecordRecommendationServed(source string, fallback bool) {
	RecommendationsServedTotal.WithLabelValues(source).Inc()
	if fallback {
		RecommendationFallbacksTotal.Inc()
	}
}

// RecordBatchUser records one user's outcome in a batch run.
func RecordBatchUser(job string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	BatchUsersTotal.WithLabelValues(job, outcome).Inc()
}

func ObserveScoring(d time.Duration) {
	ScoringDuration.Observe(d.Seconds())
}

// RecordAuthAttempt records one request passing through the auth middleware.
func RecordAuthAttempt(method, outcome string) {
	if method == "" {
		method = "none"
	}
	AuthAttemptsTotal.WithLabelValues(method, outcome).Inc()
}
