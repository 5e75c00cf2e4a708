// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_requests_total",
			Help: "Total number of ranking requests served",
		},
		[]string{"endpoint", "status"},
	)

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommender_ranking_duration_seconds",
			Help: "Duration of a full ranking pass in seconds",
		},
		[]string{"endpoint"},
	)

	PartialSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_partial_signals_total",
			Help: "Pairs scored with a degraded sub-signal",
		},
		[]string{"signal"},
	)

	CandidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommender_candidates_scored",
			Help:    "Candidate internships scored per ranking pass",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	SignalCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_signal_cache_total",
			Help: "Pair-signal cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
