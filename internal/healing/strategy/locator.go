package strategy

import (
	"regexp"
	"strings"

	"github.com/vietddude/healer/internal/core/domain"
)

// selectorPattern matches "selector: <value>" fragments in failure messages,
// the format most runners use when reporting a missing element.
var selectorPattern = regexp.MustCompile(`selector:\s*([^\s,;]+)`)

// quotedValuePattern picks the first single- or double-quoted value out of
// an XPath predicate.
var quotedValuePattern = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)

// ExtractLocator pulls the failed locator out of a failure, first from a
// "selector:" fragment in the message, then from the conventional context
// keys. Returns false when the failure carries no locator at all.
func ExtractLocator(failure *domain.Failure) (string, bool) {
	if m := selectorPattern.FindStringSubmatch(failure.Message); m != nil {
		return m[1], true
	}
	if v, ok := failure.Context[domain.ContextKeySelector]; ok && v != "" {
		return v, true
	}
	if v, ok := failure.Context[domain.ContextKeyLocator]; ok && v != "" {
		return v, true
	}
	return "", false
}

// LocatorSeed reduces a locator to the bare identifier candidates are built
// around: "#save-btn" and ".save-btn" become "save-btn", attribute selectors
// keep their value, XPath expressions keep their last meaningful token.
func LocatorSeed(locator string) string {
	seed := strings.TrimSpace(locator)

	// Attribute selector: take the quoted value.
	if strings.HasPrefix(seed, "[") {
		if i := strings.IndexAny(seed, "='\""); i >= 0 {
			seed = strings.Trim(seed[i:], `=[]'"*^$~ `)
		} else {
			seed = strings.Trim(seed, "[]")
		}
		return seed
	}

	// XPath: keep the last path segment and strip predicates. A wildcard
	// step falls back to the first quoted value in its predicate.
	if strings.HasPrefix(seed, "/") || strings.HasPrefix(seed, "(") {
		parts := strings.Split(strings.Trim(seed, "/()"), "/")
		last := parts[len(parts)-1]
		name := last
		if i := strings.Index(last, "["); i >= 0 {
			name = last[:i]
		}
		if name != "" && name != "*" {
			return name
		}
		if m := quotedValuePattern.FindStringSubmatch(last); m != nil {
			if m[1] != "" {
				return m[1]
			}
			return m[2]
		}
		return name
	}

	seed = strings.TrimLeft(seed, "#.")
	// Compound CSS selector: keep the first simple part.
	if i := strings.IndexAny(seed, " >+~:["); i >= 0 {
		seed = seed[:i]
	}
	return seed
}
