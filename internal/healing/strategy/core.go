package strategy

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/vietddude/healer/internal/core/domain"
)

// Universal confidence adjustment constants. Every strategy's base score
// passes through the same pipeline (see AdjustConfidence).
const (
	// attemptDecayFactor multiplies confidence per prior attempt for the
	// same test, discouraging strategies that already failed on it.
	attemptDecayFactor = 0.8

	// highLoadThreshold and highLoadPenalty dampen confidence when the
	// runner is under pressure.
	highLoadThreshold = 0.8
	highLoadPenalty   = 0.9

	// Historical success-rate adjustments only apply once the strategy has
	// enough samples to make the rate meaningful.
	strongRateThreshold = 0.8
	strongRateBonus     = 1.1
	weakRateThreshold   = 0.3
	weakRatePenalty     = 0.8
	minRateSamples      = 5
)

// HealFunc is a strategy-specific healing routine executed under the shared
// template in Run.
type HealFunc func(ctx context.Context, failure *domain.Failure, hctx *domain.HealingContext) *domain.HealingResult

// Core carries the bookkeeping every strategy shares: identity, supported
// failure kinds, per-test attempt counts and success/failure counters.
// Concrete strategies hold a Core and delegate to it.
type Core struct {
	name      string
	version   string
	supported map[domain.FailureKind]struct{}
	kinds     []domain.FailureKind

	mu             sync.Mutex
	successCount   int
	failureCount   int
	attemptsByTest map[string]int
}

// NewCore creates the shared bookkeeping for a strategy.
func NewCore(name, version string, supported ...domain.FailureKind) *Core {
	set := make(map[domain.FailureKind]struct{}, len(supported))
	for _, k := range supported {
		set[k] = struct{}{}
	}
	return &Core{
		name:           name,
		version:        version,
		supported:      set,
		kinds:          supported,
		attemptsByTest: make(map[string]int),
	}
}

func (c *Core) Name() string    { return c.name }
func (c *Core) Version() string { return c.version }

// SupportedFailures returns a copy of the supported failure kinds.
func (c *Core) SupportedFailures() []domain.FailureKind {
	out := make([]domain.FailureKind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// CanHeal reports whether the failure's kind is supported.
func (c *Core) CanHeal(failure *domain.Failure) bool {
	_, ok := c.supported[failure.Kind]
	return ok
}

// AttemptCount returns how many heal attempts this strategy has recorded
// for the given test.
func (c *Core) AttemptCount(testID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attemptsByTest[testID]
}

// AdjustConfidence applies the universal adjustments to a strategy-specific
// base score: exponential decay per prior attempt on the same test, a
// penalty under high system load, and a bonus or penalty from the
// strategy's own historical success rate. The result is clamped to [0,1]
// and is exactly 0 when the failure kind is unsupported.
func (c *Core) AdjustConfidence(base float64, failure *domain.Failure, hctx *domain.HealingContext) float64 {
	if !c.CanHeal(failure) {
		return 0
	}

	c.mu.Lock()
	attempts := c.attemptsByTest[failure.TestID]
	successes := c.successCount
	failures := c.failureCount
	c.mu.Unlock()

	confidence := base * math.Pow(attemptDecayFactor, float64(attempts))

	if hctx != nil && hctx.SystemState.Load > highLoadThreshold {
		confidence *= highLoadPenalty
	}

	if total := successes + failures; total >= minRateSamples {
		rate := float64(successes) / float64(total)
		if rate > strongRateThreshold {
			confidence *= strongRateBonus
		} else if rate < weakRateThreshold {
			confidence *= weakRatePenalty
		}
	}

	return ClampConfidence(confidence)
}

// Run executes routine under the shared healing template: it rejects
// unsupported failures, counts the attempt, converts panics into failure
// results and keeps the success/failure counters.
func (c *Core) Run(ctx context.Context, failure *domain.Failure, hctx *domain.HealingContext, routine HealFunc) (result *domain.HealingResult) {
	start := time.Now()

	if !c.CanHeal(failure) {
		return NewFailureResult(c, fmt.Sprintf("strategy %s cannot heal failure kind %s", c.name, failure.Kind), time.Since(start))
	}

	c.mu.Lock()
	c.attemptsByTest[failure.TestID]++
	c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			result = NewFailureResult(c, fmt.Sprintf("strategy %s failed: %v", c.name, r), time.Since(start))
		}
		if result == nil {
			result = NewFailureResult(c, fmt.Sprintf("strategy %s returned no result", c.name), time.Since(start))
		}
		c.recordOutcome(result.Success)
	}()

	result = routine(ctx, failure, hctx)
	return result
}

// Statistics returns the current lifetime counters.
func (c *Core) Statistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Statistics{
		SuccessCount:      c.successCount,
		FailureCount:      c.failureCount,
		SupportedFailures: c.SupportedFailures(),
	}
	if total := c.successCount + c.failureCount; total > 0 {
		stats.SuccessRate = float64(c.successCount) / float64(total)
	}
	return stats
}

// ResetStatistics clears the counters and per-test attempt counts.
func (c *Core) ResetStatistics() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.successCount = 0
	c.failureCount = 0
	c.attemptsByTest = make(map[string]int)
}

func (c *Core) recordOutcome(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if success {
		c.successCount++
	} else {
		c.failureCount++
	}
}

// ClampConfidence bounds a confidence score to [0,1].
func ClampConfidence(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
