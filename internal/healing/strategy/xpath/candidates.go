package xpath

import (
	"fmt"

	"github.com/vietddude/healer/internal/healing/strategy"
)

// standardCandidates builds the ordered XPath candidate list around the
// seed: attribute hooks first, then text matches, then position guesses.
func standardCandidates(seed string) []strategy.Candidate {
	var out []strategy.Candidate

	for _, attr := range []string{"data-testid", "data-test", "data-cy"} {
		out = append(out, strategy.Candidate{
			Locator:    fmt.Sprintf(`//*[@%s="%s"]`, attr, seed),
			Confidence: strategy.ClampConfidence(baseConfidence + testHookBonus - wildcardPenalty),
			Family:     "attribute",
		})
	}
	for _, attr := range []string{"id", "name", "aria-label"} {
		out = append(out, strategy.Candidate{
			Locator:    fmt.Sprintf(`//*[@%s="%s"]`, attr, seed),
			Confidence: strategy.ClampConfidence(baseConfidence + attributeBonus - wildcardPenalty),
			Family:     "attribute",
		})
	}

	// Text matches: exact, substring, case-insensitive.
	textConfidence := strategy.ClampConfidence(baseConfidence + textBonus - wildcardPenalty)
	out = append(out,
		strategy.Candidate{
			Locator:    fmt.Sprintf(`//*[text()="%s"]`, seed),
			Confidence: textConfidence,
			Family:     "text",
		},
		strategy.Candidate{
			Locator:    fmt.Sprintf(`//*[contains(text(),"%s")]`, seed),
			Confidence: textConfidence,
			Family:     "text",
		},
		strategy.Candidate{
			Locator: fmt.Sprintf(
				`//*[contains(translate(text(),"ABCDEFGHIJKLMNOPQRSTUVWXYZ","abcdefghijklmnopqrstuvwxyz"),"%s")]`,
				seed),
			Confidence: textConfidence,
			Family:     "text",
		},
	)

	positionConfidence := strategy.ClampConfidence(baseConfidence - positionPenalty - wildcardPenalty)
	out = append(out,
		strategy.Candidate{
			Locator:    fmt.Sprintf(`(//*[contains(@class,"%s")])[1]`, seed),
			Confidence: positionConfidence,
			Family:     "position",
		},
		strategy.Candidate{
			Locator:    fmt.Sprintf(`(//*[contains(@class,"%s")])[last()]`, seed),
			Confidence: positionConfidence,
			Family:     "position",
		},
	)

	return out
}

// structuralCandidates builds the ancestor/descendant scans tried only after
// every standard candidate missed.
func structuralCandidates(seed string) []strategy.Candidate {
	confidence := strategy.ClampConfidence(baseConfidence - wildcardPenalty)
	var out []strategy.Candidate
	for _, ancestor := range []string{"form", "div", "section"} {
		out = append(out, strategy.Candidate{
			Locator:    fmt.Sprintf(`//%s//*[contains(@class,"%s")]`, ancestor, seed),
			Confidence: confidence,
			Family:     "structural",
		})
	}
	out = append(out, strategy.Candidate{
		Locator:    fmt.Sprintf(`//*[@id="%s"]/descendant::*[1]`, seed),
		Confidence: confidence,
		Family:     "structural",
	})
	return out
}
