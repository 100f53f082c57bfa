package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vietddude/healer/internal/core/domain"
	"github.com/vietddude/healer/internal/healing/engine"
	"github.com/vietddude/healer/internal/healing/strategy/css"
	"github.com/vietddude/healer/internal/healing/strategy/neighbor"
	"github.com/vietddude/healer/internal/healing/strategy/retry"
	"github.com/vietddude/healer/internal/healing/strategy/xpath"
	"github.com/vietddude/healer/internal/infra/probe"
)

func main() {
	ctx := context.Background()

	// 1. A probe standing in for the browser layer: it only resolves the
	// data-testid hook, as if the element's id changed but the hook stayed.
	locatorProbe := probe.NewStatic([]string{`[data-testid="save-btn"]`})

	// 2. Engine with the four built-in strategies
	eng := engine.New(engine.Config{
		MaxAttempts:            3,
		MinConfidenceThreshold: 0.3,
		StrategyTimeout:        5 * time.Second,
	})
	eng.RegisterStrategy(retry.New(locatorProbe, retry.Config{
		WaitAttempts: 2,
		WaitInterval: 100 * time.Millisecond,
	}))
	eng.RegisterStrategy(css.New(locatorProbe, css.Config{}))
	eng.RegisterStrategy(xpath.New(locatorProbe, xpath.Config{}))
	eng.RegisterStrategy(neighbor.New(locatorProbe, neighbor.Config{}))

	// 3. A failure as a test engine would report it
	failure := domain.NewFailure("checkout-test-01", domain.FailureElementNotFound,
		"element not found, selector: #save-btn", map[string]string{
			domain.ContextKeySelector: "#save-btn",
		})
	hctx := &domain.HealingContext{
		SystemState: domain.SystemState{Load: 0.4, ActiveTests: 3},
	}

	fmt.Println("=== Self-Healing Demo ===")
	fmt.Printf("Pre-flight confidence: %.2f\n\n", eng.CalculateConfidence(failure, hctx))

	// 4. Heal and show the audit trail
	result := eng.Heal(ctx, failure, hctx)
	fmt.Printf("Healed: %v (confidence %.2f, strategy %s)\n", result.Success, result.Confidence, result.Metadata.Strategy)
	fmt.Printf("Message: %s\n", result.Message)
	for i, action := range result.Actions {
		fmt.Printf("  action %d: [%s] %s -> %s\n", i+1, action.Type, action.Description, action.Outcome)
	}
	fmt.Println()

	// 5. Aggregate statistics
	stats := eng.Stats()
	fmt.Printf("Attempts: %d total / %d ok / %d failed (rate %.2f)\n",
		stats.TotalAttempts, stats.SuccessfulAttempts, stats.FailedAttempts, stats.SuccessRate)
	for name, rates := range stats.ByStrategy {
		fmt.Printf("  %s: %d attempts, rate %.2f\n", name, rates.Attempts, rates.SuccessRate)
	}
}
