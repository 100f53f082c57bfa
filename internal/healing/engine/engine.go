// Package engine implements the healing orchestrator: ordered strategy
// fallback with early exit, per-strategy timeout enforcement, best-result
// selection and aggregate statistics.
package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/healer/internal/core/domain"
	"github.com/vietddude/healer/internal/healing/metrics"
	"github.com/vietddude/healer/internal/healing/strategy"
)

const (
	// engineName stamps results the orchestrator synthesizes itself.
	engineName    = "engine"
	engineVersion = "1.0.0"

	// earlyExitConfidence stops the fallback loop once a success this
	// confident is found.
	earlyExitConfidence = 0.8
)

// Engine orchestrates the registered strategies. Safe for concurrent use:
// one mutex serializes the attempt history, the aggregate statistics and
// configuration reads.
type Engine struct {
	mu         sync.Mutex
	cfg        Config
	strategies map[string]strategy.Strategy
	attempts   map[string]int
	history    map[string][]domain.AttemptRecord
	stats      Stats
}

// New creates an engine with no strategies registered.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.MinConfidenceThreshold <= 0 {
		cfg.MinConfidenceThreshold = def.MinConfidenceThreshold
	}
	if cfg.StrategyTimeout <= 0 {
		cfg.StrategyTimeout = def.StrategyTimeout
	}
	return &Engine{
		cfg:        cfg,
		strategies: make(map[string]strategy.Strategy),
		attempts:   make(map[string]int),
		history:    make(map[string][]domain.AttemptRecord),
		stats:      newStats(),
	}
}

// RegisterStrategy adds a strategy. Registering a duplicate name replaces
// the prior registration.
func (e *Engine) RegisterStrategy(s strategy.Strategy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strategies[s.Name()] = s
}

// UnregisterStrategy removes a strategy by name.
func (e *Engine) UnregisterStrategy(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.strategies, name)
}

// Heal is the primary entry point. It never returns nil and never panics
// for recoverable conditions: every failure mode is reported through the
// result's Success flag and message.
func (e *Engine) Heal(ctx context.Context, failure *domain.Failure, hctx *domain.HealingContext) *domain.HealingResult {
	start := time.Now()

	// Check and consume the attempt budget in one critical section so
	// concurrent calls for the same test cannot overrun the cap.
	e.mu.Lock()
	cfg := e.cfg
	capped := e.attempts[failure.TestID] >= cfg.MaxAttempts
	if !capped {
		e.attempts[failure.TestID]++
	}
	applicable := e.applicableLocked(failure)
	e.mu.Unlock()

	if capped {
		result := e.syntheticFailure("maximum healing attempts exceeded", time.Since(start))
		e.finish(failure, result, cfg)
		return result
	}

	if len(applicable) == 0 {
		result := e.syntheticFailure("no applicable healing strategies for failure kind "+string(failure.Kind), time.Since(start))
		e.finish(failure, result, cfg)
		return result
	}

	var results []*domain.HealingResult
	for _, strat := range applicable {
		confidence := strat.CalculateConfidence(failure, hctx)
		if confidence < cfg.MinConfidenceThreshold {
			if cfg.EnableDetailedLogging {
				slog.Debug("Skipping strategy below confidence threshold",
					"strategy", strat.Name(),
					"confidence", confidence,
					"threshold", cfg.MinConfidenceThreshold)
			}
			if cfg.EnableMetrics {
				metrics.StrategiesSkipped.WithLabelValues(strat.Name()).Inc()
			}
			continue
		}

		result := e.runWithTimeout(ctx, strat, failure, hctx, cfg.StrategyTimeout)
		results = append(results, result)

		if cfg.EnableDetailedLogging {
			slog.Debug("Strategy finished",
				"strategy", strat.Name(),
				"success", result.Success,
				"confidence", result.Confidence,
				"duration", result.Duration)
		}

		if result.Success && result.Confidence > earlyExitConfidence {
			break
		}
	}

	best := selectBest(results)
	if best == nil {
		best = e.syntheticFailure("no healing strategies produced a result", time.Since(start))
	}
	e.finish(failure, best, cfg)
	return best
}

// CalculateConfidence returns the maximum confidence across all applicable
// strategies without committing an attempt, or 0 when none apply.
func (e *Engine) CalculateConfidence(failure *domain.Failure, hctx *domain.HealingContext) float64 {
	e.mu.Lock()
	applicable := e.applicableLocked(failure)
	e.mu.Unlock()

	max := 0.0
	for _, strat := range applicable {
		if c := strat.CalculateConfidence(failure, hctx); c > max {
			max = c
		}
	}
	return max
}

// Stats returns a copy of the aggregate statistics.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.clone()
}

// ResetStats clears the aggregate statistics and the attempt history.
func (e *Engine) ResetStats() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats = newStats()
	e.attempts = make(map[string]int)
	e.history = make(map[string][]domain.AttemptRecord)
}

// AttemptHistory returns a copy of the attempt records for a test.
func (e *Engine) AttemptHistory(testID string) []domain.AttemptRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	records := e.history[testID]
	out := make([]domain.AttemptRecord, len(records))
	copy(out, records)
	return out
}

// UpdateConfig applies a partial reconfiguration at runtime.
func (e *Engine) UpdateConfig(patch ConfigPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if patch.MaxAttempts != nil && *patch.MaxAttempts > 0 {
		e.cfg.MaxAttempts = *patch.MaxAttempts
	}
	if patch.MinConfidenceThreshold != nil && *patch.MinConfidenceThreshold >= 0 {
		e.cfg.MinConfidenceThreshold = *patch.MinConfidenceThreshold
	}
	if patch.StrategyTimeout != nil && *patch.StrategyTimeout > 0 {
		e.cfg.StrategyTimeout = *patch.StrategyTimeout
	}
	if patch.EnableMetrics != nil {
		e.cfg.EnableMetrics = *patch.EnableMetrics
	}
	if patch.EnableDetailedLogging != nil {
		e.cfg.EnableDetailedLogging = *patch.EnableDetailedLogging
	}
}

// Configuration returns the current knob values.
func (e *Engine) Configuration() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// applicableLocked returns the strategies able to heal the failure, sorted
// by name for deterministic ordering. Caller holds the lock.
func (e *Engine) applicableLocked(failure *domain.Failure) []strategy.Strategy {
	var out []strategy.Strategy
	for _, strat := range e.strategies {
		if strat.CanHeal(failure) {
			out = append(out, strat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// runWithTimeout races the strategy against the per-strategy timeout. The
// loser is abandoned; a timeout becomes an ordinary failed outcome and
// never aborts the fallback loop.
func (e *Engine) runWithTimeout(ctx context.Context, strat strategy.Strategy, failure *domain.Failure, hctx *domain.HealingContext, timeout time.Duration) *domain.HealingResult {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan *domain.HealingResult, 1)
	go func() {
		done <- strat.Heal(tctx, failure, hctx)
	}()

	select {
	case result := <-done:
		if result == nil {
			return e.strategyFailure(strat, "strategy returned no result", timeout)
		}
		return result
	case <-tctx.Done():
		return e.strategyFailure(strat, "strategy timeout", timeout)
	}
}

func (e *Engine) strategyFailure(strat strategy.Strategy, message string, duration time.Duration) *domain.HealingResult {
	return &domain.HealingResult{
		ID:       uuid.New().String(),
		Success:  false,
		Duration: duration,
		Message:  message,
		Metadata: domain.ResultMetadata{
			Strategy:  strat.Name(),
			Version:   strat.Version(),
			Timestamp: time.Now(),
		},
	}
}

func (e *Engine) syntheticFailure(message string, duration time.Duration) *domain.HealingResult {
	return &domain.HealingResult{
		ID:       uuid.New().String(),
		Success:  false,
		Duration: duration,
		Message:  message,
		Metadata: domain.ResultMetadata{
			Strategy:  engineName,
			Version:   engineVersion,
			Timestamp: time.Now(),
		},
	}
}

// finish appends the attempt record and folds the outcome into the
// aggregate statistics, regardless of which branch produced the result.
func (e *Engine) finish(failure *domain.Failure, result *domain.HealingResult, cfg Config) {
	record := domain.AttemptRecord{
		Strategy:   result.Metadata.Strategy,
		Success:    result.Success,
		Confidence: result.Confidence,
		Duration:   result.Duration,
		Message:    result.Message,
		Timestamp:  time.Now(),
	}

	e.mu.Lock()
	e.history[failure.TestID] = append(e.history[failure.TestID], record)
	e.stats.record(failure.Kind, result.Metadata.Strategy, result.Success, result.Duration)
	e.mu.Unlock()

	if cfg.EnableMetrics {
		outcome := "failure"
		if result.Success {
			outcome = "success"
		}
		metrics.HealAttemptsTotal.WithLabelValues(result.Metadata.Strategy, string(failure.Kind), outcome).Inc()
		metrics.HealDuration.WithLabelValues(result.Metadata.Strategy).Observe(result.Duration.Seconds())
		metrics.HealConfidence.WithLabelValues(result.Metadata.Strategy).Observe(result.Confidence)
	}

	if cfg.EnableDetailedLogging {
		slog.Info("Healing attempt recorded",
			"test_id", failure.TestID,
			"strategy", result.Metadata.Strategy,
			"success", result.Success,
			"confidence", result.Confidence,
			"message", result.Message)
	}
}

// selectBest prefers success over failure, then higher confidence.
func selectBest(results []*domain.HealingResult) *domain.HealingResult {
	var best *domain.HealingResult
	for _, result := range results {
		if best == nil {
			best = result
			continue
		}
		if result.Success != best.Success {
			if result.Success {
				best = result
			}
			continue
		}
		if result.Confidence > best.Confidence {
			best = result
		}
	}
	return best
}
