package engine

import (
	"time"

	"github.com/vietddude/healer/internal/core/domain"
)

// RateStats is a running success rate over a slice of attempts.
type RateStats struct {
	Attempts    int     `json:"attempts"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
}

// Stats is the engine's aggregate view over every heal call made so far.
type Stats struct {
	TotalAttempts      int                             `json:"total_attempts"`
	SuccessfulAttempts int                             `json:"successful_attempts"`
	FailedAttempts     int                             `json:"failed_attempts"`
	SuccessRate        float64                         `json:"success_rate"`
	AverageDuration    time.Duration                   `json:"average_duration"`
	ByFailureKind      map[domain.FailureKind]RateStats `json:"by_failure_kind"`
	ByStrategy         map[string]RateStats            `json:"by_strategy"`
}

func newStats() Stats {
	return Stats{
		ByFailureKind: make(map[domain.FailureKind]RateStats),
		ByStrategy:    make(map[string]RateStats),
	}
}

// record folds one heal outcome into the aggregates. Caller holds the
// engine lock.
func (s *Stats) record(kind domain.FailureKind, strategyName string, success bool, duration time.Duration) {
	s.TotalAttempts++
	if success {
		s.SuccessfulAttempts++
	} else {
		s.FailedAttempts++
	}
	s.SuccessRate = float64(s.SuccessfulAttempts) / float64(s.TotalAttempts)

	// Rolling average: avg = (avg*(n-1) + d) / n
	n := time.Duration(s.TotalAttempts)
	s.AverageDuration = (s.AverageDuration*(n-1) + duration) / n

	kindStats := s.ByFailureKind[kind]
	kindStats.fold(success)
	s.ByFailureKind[kind] = kindStats

	stratStats := s.ByStrategy[strategyName]
	stratStats.fold(success)
	s.ByStrategy[strategyName] = stratStats
}

func (r *RateStats) fold(success bool) {
	r.Attempts++
	if success {
		r.Successes++
	}
	r.SuccessRate = float64(r.Successes) / float64(r.Attempts)
}

// clone returns a deep copy safe to hand out.
func (s *Stats) clone() Stats {
	out := *s
	out.ByFailureKind = make(map[domain.FailureKind]RateStats, len(s.ByFailureKind))
	for k, v := range s.ByFailureKind {
		out.ByFailureKind[k] = v
	}
	out.ByStrategy = make(map[string]RateStats, len(s.ByStrategy))
	for k, v := range s.ByStrategy {
		out.ByStrategy[k] = v
	}
	return out
}
