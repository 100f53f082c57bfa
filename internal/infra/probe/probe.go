// Package probe provides deterministic LocatorProbe implementations.
// Production deployments inject a probe backed by real DOM introspection;
// these are the in-process doubles used by the service binary and tests.
package probe

import (
	"context"
	"sync"

	"github.com/vietddude/healer/internal/core/domain"
)

// Static resolves locators against a fixed table of known-good locators.
type Static struct {
	mu    sync.RWMutex
	known map[string]struct{}
}

// NewStatic creates a probe that recognizes exactly the given locators.
func NewStatic(known []string) *Static {
	set := make(map[string]struct{}, len(known))
	for _, locator := range known {
		set[locator] = struct{}{}
	}
	return &Static{known: set}
}

// Probe reports whether the locator is in the known set.
func (p *Static) Probe(ctx context.Context, locator string, hctx *domain.HealingContext) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.known[locator]
	return ok, nil
}

// Add marks a locator as resolvable.
func (p *Static) Add(locator string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.known[locator] = struct{}{}
}

// Remove marks a locator as no longer resolvable.
func (p *Static) Remove(locator string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.known, locator)
}

// Func adapts a plain function to the LocatorProbe interface.
type Func func(ctx context.Context, locator string, hctx *domain.HealingContext) (bool, error)

// Probe calls the wrapped function.
func (f Func) Probe(ctx context.Context, locator string, hctx *domain.HealingContext) (bool, error) {
	return f(ctx, locator, hctx)
}
