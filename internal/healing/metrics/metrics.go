package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HealAttemptsTotal tracks orchestrator heal outcomes per strategy and
	// failure kind.
	HealAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healer_heal_attempts_total",
			Help: "Total number of healing attempts",
		},
		[]string{"strategy", "failure_kind", "outcome"},
	)

	// HealDuration tracks how long a healing attempt took end to end.
	HealDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healer_heal_duration_seconds",
			Help:    "Healing attempt duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)

	// HealConfidence tracks the confidence of returned results.
	HealConfidence = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healer_heal_confidence",
			Help:    "Confidence of returned healing results",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
		[]string{"strategy"},
	)

	// StrategiesSkipped tracks strategies skipped for low confidence.
	StrategiesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healer_strategies_skipped_total",
			Help: "Strategies skipped below the confidence threshold",
		},
		[]string{"strategy"},
	)
)
