package strategy

import (
	"context"
	"fmt"

	"github.com/vietddude/healer/internal/core/domain"
)

// Candidate is a guessed alternative locator with its ranking score and the
// family it was generated from.
type Candidate struct {
	Locator    string
	Confidence float64
	Family     string
}

// CapCandidates bounds a candidate list to at most max entries, preserving
// generation order. A non-positive max leaves the list untouched.
func CapCandidates(candidates []Candidate, max int) []Candidate {
	if max <= 0 || len(candidates) <= max {
		return candidates
	}
	return candidates[:max]
}

// ProbeCandidates tries each candidate in order against the probe and stops
// at the first match. It returns the matched candidate, or nil when every
// candidate missed, together with the audit-trail actions for all probes
// made. Probe errors count as misses since the probe boundary is declared
// flaky.
func ProbeCandidates(ctx context.Context, probe LocatorProbe, hctx *domain.HealingContext, candidates []Candidate) (*Candidate, []domain.HealingAction) {
	var actions []domain.HealingAction

	for i := range candidates {
		cand := candidates[i]
		params := map[string]string{
			"locator":    cand.Locator,
			"family":     cand.Family,
			"confidence": fmt.Sprintf("%.2f", cand.Confidence),
		}

		ok, err := probe.Probe(ctx, cand.Locator, hctx)
		if ok && err == nil {
			actions = append(actions, NewAction(
				domain.ActionUpdateSelector,
				fmt.Sprintf("candidate locator %s resolved", cand.Locator),
				params,
				domain.OutcomeSuccess,
				"",
			))
			return &cand, actions
		}

		message := "candidate did not resolve"
		if err != nil {
			message = fmt.Sprintf("probe error: %v", err)
		}
		actions = append(actions, NewAction(
			domain.ActionFallbackStrategy,
			fmt.Sprintf("candidate locator %s rejected", cand.Locator),
			params,
			domain.OutcomeFailure,
			message,
		))

		if ctx.Err() != nil {
			break
		}
	}
	return nil, actions
}
