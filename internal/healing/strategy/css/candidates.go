package css

import (
	"fmt"

	"github.com/vietddude/healer/internal/healing/strategy"
)

// Attributes commonly used as dedicated test hooks.
var testHookAttributes = []string{"data-testid", "data-test", "data-cy", "data-qa"}

// Class names that frequently survive UI refactors.
var commonClasses = []string{"btn", "submit", "primary", "form-control"}

// standardCandidates builds the ordered candidate list around the seed:
// attribute selectors first (most reliable), then class, pseudo-class,
// structural and text-attribute guesses.
func standardCandidates(seed string) []strategy.Candidate {
	var out []strategy.Candidate

	for _, attr := range testHookAttributes {
		out = append(out, strategy.Candidate{
			Locator:    fmt.Sprintf(`[%s="%s"]`, attr, seed),
			Confidence: strategy.ClampConfidence(baseConfidence + testHookBonus),
			Family:     "attribute",
		})
	}
	for _, attr := range []string{"id", "name"} {
		out = append(out, strategy.Candidate{
			Locator:    fmt.Sprintf(`[%s="%s"]`, attr, seed),
			Confidence: strategy.ClampConfidence(baseConfidence + attributeBonus),
			Family:     "attribute",
		})
	}

	out = append(out, strategy.Candidate{
		Locator:    "." + seed,
		Confidence: baseConfidence,
		Family:     "class",
	})
	for _, class := range commonClasses {
		out = append(out, strategy.Candidate{
			Locator:    fmt.Sprintf(".%s.%s", seed, class),
			Confidence: baseConfidence,
			Family:     "class",
		})
	}

	for _, pseudo := range []string{":first-child", ":last-child", ":nth-child(1)", ":first-of-type"} {
		out = append(out, strategy.Candidate{
			Locator:    "." + seed + pseudo,
			Confidence: baseConfidence,
			Family:     "pseudo",
		})
	}

	for _, parent := range []string{"form", "div", "section"} {
		out = append(out, strategy.Candidate{
			Locator:    fmt.Sprintf("%s > .%s", parent, seed),
			Confidence: baseConfidence,
			Family:     "structural",
		})
	}
	out = append(out, strategy.Candidate{
		Locator:    fmt.Sprintf("label + .%s", seed),
		Confidence: baseConfidence,
		Family:     "structural",
	})

	for _, attr := range []string{"title", "alt", "placeholder", "aria-label"} {
		out = append(out, strategy.Candidate{
			Locator:    fmt.Sprintf(`[%s*="%s"]`, attr, seed),
			Confidence: strategy.ClampConfidence(baseConfidence + attributeBonus),
			Family:     "text-attribute",
		})
	}

	return out
}

// advancedCandidates builds the reduced-confidence wildcard scans tried only
// after every standard candidate missed.
func advancedCandidates(seed string) []strategy.Candidate {
	wildcardConfidence := strategy.ClampConfidence(baseConfidence - wildcardPenalty)
	var out []strategy.Candidate
	for _, attr := range []string{"class", "id", "name", "data-testid"} {
		out = append(out, strategy.Candidate{
			Locator:    fmt.Sprintf(`*[%s*="%s"]`, attr, seed),
			Confidence: wildcardConfidence,
			Family:     "wildcard",
		})
	}
	return out
}
