// Package strategy defines the contract shared by all recovery strategies
// and the bookkeeping core they compose.
package strategy

import (
	"context"

	"github.com/vietddude/healer/internal/core/domain"
)

// LocatorProbe checks whether a candidate locator currently resolves to an
// element in the live system under test. Implementations may be slow or
// flaky; callers treat a probe error the same as a non-match.
type LocatorProbe interface {
	Probe(ctx context.Context, locator string, hctx *domain.HealingContext) (bool, error)
}

// Strategy is the behavior every recovery strategy implements.
type Strategy interface {
	// Name returns the unique strategy name used for registration and ordering.
	Name() string

	// Version returns the strategy version stamped into result metadata.
	Version() string

	// SupportedFailures returns the failure kinds this strategy can heal.
	SupportedFailures() []domain.FailureKind

	// CanHeal reports whether the failure kind is in the supported set.
	CanHeal(failure *domain.Failure) bool

	// CalculateConfidence estimates, in [0,1], how likely this strategy is
	// to heal the failure. Returns exactly 0 when CanHeal is false.
	CalculateConfidence(failure *domain.Failure, hctx *domain.HealingContext) float64

	// Heal attempts recovery and always returns a result, never panics.
	Heal(ctx context.Context, failure *domain.Failure, hctx *domain.HealingContext) *domain.HealingResult

	// Statistics returns the strategy's lifetime counters.
	Statistics() Statistics

	// ResetStatistics clears the counters.
	ResetStatistics()
}

// Statistics holds a strategy's lifetime success/failure counters.
type Statistics struct {
	SuccessCount      int                  `json:"success_count"`
	FailureCount      int                  `json:"failure_count"`
	SuccessRate       float64              `json:"success_rate"`
	SupportedFailures []domain.FailureKind `json:"supported_failures"`
}
