package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ginraidee_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "route"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ginraidee_http_requests_total",
			Help: "Total number of HTTP requests by status code",
		},
		[]string{"service", "method", "route", "status"},
	)

	// outcome: picked, no_candidates
	SpinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ginraidee_random_picks_total",
			Help: "Random menu picks served, by outcome",
		},
		[]string{"outcome"},
	)

	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ginraidee_feedback_total",
			Help: "Feedback records written, by action",
		},
		[]string{"action"},
	)

	SelectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ginraidee_selections_total",
			Help: "Selection records written",
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ginraidee_events_published_total",
			Help: "Food events sent to Kafka, by type and result",
		},
		[]string{"type", "result"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ginraidee_events_consumed_total",
			Help: "Food events folded into leaderboards, by type and result",
		},
		[]string{"type", "result"},
	)

	CacheFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ginraidee_cache_fallbacks_total",
			Help: "Reads served from Postgres because Redis was unavailable or empty",
		},
		[]string{"read"},
	)
)
