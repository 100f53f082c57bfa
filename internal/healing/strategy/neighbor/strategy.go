// Package neighbor implements the Neighbor-Analysis recovery strategy: it
// locates the lost element through its relationships to nearby elements,
// falling back to a fixed list of contextual UI-idiom patterns.
package neighbor

import (
	"context"
	"fmt"
	"time"

	"github.com/vietddude/healer/internal/core/domain"
	"github.com/vietddude/healer/internal/healing/strategy"
)

const (
	Name    = "neighbor-analysis"
	Version = "1.0.0"
)

const (
	baseConfidence = 0.4

	siblingBonus     = 0.2
	parentChildBonus = 0.1
	textAnchorBonus  = 0.3
	attrAnchorBonus  = 0.2

	// Deeply nested relationship paths are brittle.
	maxPathSegments = 3
	depthPenalty    = 0.1

	// Contextual idioms ignore the seed entirely, so they rank lowest.
	contextualConfidence = 0.3

	defaultMaxCandidates = 8
)

// Config bounds worst-case probe cost per phase.
type Config struct {
	MaxCandidates int `yaml:"max_candidates"`
}

// Strategy generates and probes relationship-based candidates.
type Strategy struct {
	core  *strategy.Core
	probe strategy.LocatorProbe
	cfg   Config
}

// New creates the neighbor-analysis strategy.
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

	relational := strategy.CapCandidates(relationshipCandidates(seed), s.cfg.MaxCandidates)
	match, actions := strategy.ProbeCandidates(ctx, s.probe, hctx, relational)
	if match != nil {
		return strategy.NewSuccessResult(s.core, match.Confidence, time.Since(start),
			fmt.Sprintf("relational locator %s replaces %s", match.Locator, locator), actions...)
	}

	// Contextual phase: UI-idiom patterns, tried once.
	contextual := strategy.CapCandidates(contextualCandidates(), s.cfg.MaxCandidates)
	ctxMatch, ctxActions := strategy.ProbeCandidates(ctx, s.probe, hctx, contextual)
	actions = append(actions, ctxActions...)
	if ctxMatch != nil {
		return strategy.NewSuccessResult(s.core, ctxMatch.Confidence, time.Since(start),
			fmt.Sprintf("contextual locator %s replaces %s", ctxMatch.Locator, locator), actions...)
	}

	return strategy.NewFailureResult(s.core,
		fmt.Sprintf("no working relational locator found among %d candidates", len(actions)),
		time.Since(start), actions...)
}
