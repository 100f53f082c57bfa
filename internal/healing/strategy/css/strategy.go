// Package css implements the CSS-Candidate recovery strategy: it guesses
// alternative CSS selectors for the failed locator and probes them in order.
package css

import (
	"context"
	"fmt"
	"time"

	"github.com/vietddude/healer/internal/core/domain"
	"github.com/vietddude/healer/internal/healing/strategy"
)

const (
	Name    = "css-candidate"
	Version = "1.0.0"
)

const (
	baseConfidence = 0.6

	// Attribute selectors over dedicated test hooks are the most reliable
	// guesses; wildcard-rooted selectors the least.
	testHookBonus   = 0.2
	attributeBonus  = 0.1
	wildcardPenalty = 0.2

	defaultMaxCandidates = 8
)

// Config bounds worst-case probe cost per phase.
type Config struct {
	MaxCandidates int `yaml:"max_candidates"`
}

// Strategy generates and probes CSS selector candidates.
type Strategy struct {
	core  *strategy.Core
	probe strategy.LocatorProbe
	cfg   Config
}

// New creates the CSS-candidate strategy.
func New(probe strategy.LocatorProbe, cfg Config) *Strategy {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = defaultMaxCandidates
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
	return s.core.AdjustConfidence(baseConfidence, failure, hctx)
}

// Heal runs the strategy under the shared contract template.
func (s *Strategy) Heal(ctx context.Context, failure *domain.Failure, hctx *domain.HealingContext) *domain.HealingResult {
	return s.core.Run(ctx, failure, hctx, s.heal)
}

func (s *Strategy) heal(ctx context.Context, failure *domain.Failure, hctx *domain.HealingContext) *domain.HealingResult {
	start := time.Now()

	locator, ok := strategy.ExtractLocator(failure)
	if !ok {
		return strategy.NewFailureResult(s.core, "no locator found in failure context", time.Since(start))
	}
	seed := strategy.LocatorSeed(locator)

	standard := strategy.CapCandidates(standardCandidates(seed), s.cfg.MaxCandidates)
	match, actions := strategy.ProbeCandidates(ctx, s.probe, hctx, standard)
	if match != nil {
		return strategy.NewSuccessResult(s.core, match.Confidence, time.Since(start),
			fmt.Sprintf("selector %s replaces %s", match.Locator, locator), actions...)
	}

	// Advanced phase: wildcard scans at reduced confidence, tried once.
	advanced := strategy.CapCandidates(advancedCandidates(seed), s.cfg.MaxCandidates)
	advMatch, advActions := strategy.ProbeCandidates(ctx, s.probe, hctx, advanced)
	actions = append(actions, advActions...)
	if advMatch != nil {
		return strategy.NewSuccessResult(s.core, advMatch.Confidence, time.Since(start),
			fmt.Sprintf("wildcard selector %s replaces %s", advMatch.Locator, locator), actions...)
	}

	return strategy.NewFailureResult(s.core,
		fmt.Sprintf("no working CSS selector found among %d candidates", len(actions)),
		time.Since(start), actions...)
}
