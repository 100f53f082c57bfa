package neighbor

import (
	"fmt"
	"strings"

	"github.com/vietddude/healer/internal/healing/strategy"
)

// relationshipCandidates builds the ordered relational candidate list:
// text anchors first (labels rarely move), then siblings, attribute anchors
// and parent-child guesses.
func relationshipCandidates(seed string) []strategy.Candidate {
	var out []strategy.Candidate

	add := func(locator, family string, bonus float64) {
		confidence := baseConfidence + bonus
		if pathSegments(locator) > maxPathSegments {
			confidence -= depthPenalty
		}
		out = append(out, strategy.Candidate{
			Locator:    locator,
			Confidence: strategy.ClampConfidence(confidence),
			Family:     family,
		})
	}

	// Text-anchored: a label or button naming the element.
	add(fmt.Sprintf(`//label[contains(text(),"%s")]/following-sibling::input[1]`, seed), "text-anchor", textAnchorBonus)
	add(fmt.Sprintf(`//label[contains(text(),"%s")]/..//input`, seed), "text-anchor", textAnchorBonus)
	add(fmt.Sprintf(`//button[contains(text(),"%s")]`, seed), "text-anchor", textAnchorBonus)

	// Siblings of an element that still carries the seed identity.
	add(fmt.Sprintf(`//*[@id="%s"]/following-sibling::*[1]`, seed), "sibling", siblingBonus)
	add(fmt.Sprintf(`//*[@id="%s"]/preceding-sibling::*[1]`, seed), "sibling", siblingBonus)

	// Attribute anchors: for/aria references pointing at the element.
	add(fmt.Sprintf(`//*[@for="%s"]`, seed), "attribute-anchor", attrAnchorBonus)
	add(fmt.Sprintf(`//*[@aria-labelledby="%s"]`, seed), "attribute-anchor", attrAnchorBonus)

	// Parent-child relationships.
	add(fmt.Sprintf(`//*[@id="%s"]/parent::*`, seed), "parent-child", parentChildBonus)
	add(fmt.Sprintf(`//*[contains(@class,"%s")]/child::*[1]`, seed), "parent-child", parentChildBonus)

	return out
}

// Fixed UI-idiom patterns for common layouts. They do not depend on the
// failed locator at all, hence the reduced confidence.
var contextualPatterns = []string{
	`//div[contains(@class,"modal")]//button[normalize-space()="OK"]`,
	`//div[contains(@class,"modal")]//button[normalize-space()="Cancel"]`,
	`//form//button[@type="submit"]`,
	`//div[contains(@class,"btn-group")]//button[1]`,
	`//div[contains(@class,"btn-group")]//button[last()]`,
}

func contextualCandidates() []strategy.Candidate {
	out := make([]strategy.Candidate, 0, len(contextualPatterns))
	for _, pattern := range contextualPatterns {
		out = append(out, strategy.Candidate{
			Locator:    pattern,
			Confidence: contextualConfidence,
			Family:     "contextual",
		})
	}
	return out
}

// pathSegments counts the location steps in an XPath expression.
func pathSegments(locator string) int {
	n := 0
	for _, part := range strings.Split(locator, "/") {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}
