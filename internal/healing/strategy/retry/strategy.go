// Package retry implements the simplest recovery strategy: wait for the
// original locator to become available, then fall back to a single
// alternate-selector guess.
package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/vietddude/healer/internal/core/domain"
	"github.com/vietddude/healer/internal/healing/strategy"
)

const (
	Name    = "locator-retry"
	Version = "1.0.0"
)

const (
	baseConfidenceNotFound = 0.6
	baseConfidenceTimeout  = 0.7
)

var errLocatorNotVisible = errors.New("locator did not resolve")

// Config bounds the wait-and-retry phase.
type Config struct {
	WaitAttempts int           `yaml:"wait_attempts"`
	WaitInterval time.Duration `yaml:"wait_interval"`
}

// Strategy retries the original locator with a bounded constant backoff
// before guessing one alternate selector.
type Strategy struct {
	core  *strategy.Core
	probe strategy.LocatorProbe
	cfg   Config
}

// New creates the locator-retry strategy.
func New(probe strategy.LocatorProbe, cfg Config) *Strategy {
	if cfg.WaitAttempts <= 0 {
		cfg.WaitAttempts = 3
	}
	if cfg.WaitInterval <= 0 {
		cfg.WaitInterval = 500 * time.Millisecond
	}
	return &Strategy{
		core:  strategy.NewCore(Name, Version, domain.FailureElementNotFound, domain.FailureTimeout),
		probe: probe,
		cfg:   cfg,
	}
}

func (s *Strategy) Name() string                            { return s.core.Name() }
func (s *Strategy) Version() string                         { return s.core.Version() }
func (s *Strategy) SupportedFailures() []domain.FailureKind { return s.core.SupportedFailures() }
func (s *Strategy) CanHeal(failure *domain.Failure) bool    { return s.core.CanHeal(failure) }
func (s *Strategy) Statistics() strategy.Statistics         { return s.core.Statistics() }
func (s *Strategy) ResetStatistics()                        { s.core.ResetStatistics() }

// CalculateConfidence applies the universal adjustments to the fixed base.
func (s *Strategy) CalculateConfidence(failure *domain.Failure, hctx *domain.HealingContext) float64 {
	return s.core.AdjustConfidence(s.baseConfidence(failure), failure, hctx)
}

// Heal runs the strategy under the shared contract template.
func (s *Strategy) Heal(ctx context.Context, failure *domain.Failure, hctx *domain.HealingContext) *domain.HealingResult {
	return s.core.Run(ctx, failure, hctx, s.heal)
}

func (s *Strategy) baseConfidence(failure *domain.Failure) float64 {
	if failure.Kind == domain.FailureTimeout {
		return baseConfidenceTimeout
	}
	return baseConfidenceNotFound
}

func (s *Strategy) heal(ctx context.Context, failure *domain.Failure, hctx *domain.HealingContext) *domain.HealingResult {
	start := time.Now()

	locator, ok := strategy.ExtractLocator(failure)
	if !ok {
		return strategy.NewFailureResult(s.core, "no locator found in failure context", time.Since(start))
	}

	waitParams := map[string]string{
		"locator":       locator,
		"wait_attempts": fmt.Sprintf("%d", s.cfg.WaitAttempts),
		"wait_interval": s.cfg.WaitInterval.String(),
	}

	// Phase 1: the element may simply be slow; retry the original locator
	// with a constant backoff.
	backoff := retry.WithMaxRetries(uint64(s.cfg.WaitAttempts), retry.NewConstant(s.cfg.WaitInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		found, probeErr := s.probe.Probe(ctx, locator, hctx)
		if probeErr != nil {
			return retry.RetryableError(probeErr)
		}
		if !found {
			return retry.RetryableError(errLocatorNotVisible)
		}
		return nil
	})
	if err == nil {
		action := strategy.NewAction(
			domain.ActionWaitForElement,
			"original locator resolved after extended wait",
			waitParams,
			domain.OutcomeSuccess,
			"",
		)
		return strategy.NewSuccessResult(s.core, s.baseConfidence(failure), time.Since(start),
			"element appeared after extended wait", action)
	}

	waitAction := strategy.NewAction(
		domain.ActionWaitForElement,
		"original locator did not resolve within retry budget",
		waitParams,
		domain.OutcomeFailure,
		err.Error(),
	)

	// Phase 2: one alternate-selector guess.
	alternate := alternateLocator(locator)
	altParams := map[string]string{"original": locator, "alternate": alternate}

	found, probeErr := s.probe.Probe(ctx, alternate, hctx)
	if found && probeErr == nil {
		altAction := strategy.NewAction(
			domain.ActionUpdateSelector,
			fmt.Sprintf("alternate locator %s resolved", alternate),
			altParams,
			domain.OutcomeSuccess,
			"",
		)
		return strategy.NewSuccessResult(s.core, s.baseConfidence(failure), time.Since(start),
			fmt.Sprintf("alternate locator %s resolved", alternate), waitAction, altAction)
	}

	message := "alternate locator did not resolve"
	if probeErr != nil {
		message = fmt.Sprintf("probe error: %v", probeErr)
	}
	altAction := strategy.NewAction(
		domain.ActionUpdateSelector,
		fmt.Sprintf("alternate locator %s rejected", alternate),
		altParams,
		domain.OutcomeFailure,
		message,
	)
	return strategy.NewFailureResult(s.core,
		"element did not appear and alternate locator did not resolve",
		time.Since(start), waitAction, altAction)
}

// alternateLocator derives the single fallback guess: id selectors become
// attribute selectors, class selectors become substring matches, everything
// else is retried as a data-testid hook.
func alternateLocator(locator string) string {
	seed := strategy.LocatorSeed(locator)
	switch {
	case strings.HasPrefix(locator, "#"):
		return fmt.Sprintf(`[id="%s"]`, seed)
	case strings.HasPrefix(locator, "."):
		return fmt.Sprintf(`[class*="%s"]`, seed)
	default:
		return fmt.Sprintf(`[data-testid="%s"]`, seed)
	}
}
