package strategy

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vietddude/healer/internal/core/domain"
)

func newTestCore() *Core {
	return NewCore("test-strategy", "1.0.0", domain.FailureElementNotFound, domain.FailureTimeout)
}

func notFoundFailure(testID string) *domain.Failure {
	return domain.NewFailure(testID, domain.FailureElementNotFound, "element not found", nil)
}

func TestCore_CanHeal(t *testing.T) {
	core := newTestCore()

	if !core.CanHeal(notFoundFailure("t1")) {
		t.Error("Expected CanHeal true for supported kind")
	}
	unsupported := domain.NewFailure("t1", domain.FailureNetwork, "connection refused", nil)
	if core.CanHeal(unsupported) {
		t.Error("Expected CanHeal false for unsupported kind")
	}
}

func TestCore_AdjustConfidence_ZeroWhenInapplicable(t *testing.T) {
	core := newTestCore()
	failure := domain.NewFailure("t1", domain.FailureNetwork, "connection refused", nil)

	if got := core.AdjustConfidence(0.6, failure, nil); got != 0 {
		t.Errorf("Expected 0 confidence for unsupported failure, got %v", got)
	}
}

func TestCore_AdjustConfidence_DecayPerAttempt(t *testing.T) {
	core := newTestCore()
	failure := notFoundFailure("t1")
	routine := func(ctx context.Context, f *domain.Failure, h *domain.HealingContext) *domain.HealingResult {
		return NewSuccessResult(core, 0.6, time.Millisecond, "ok")
	}

	prev := core.AdjustConfidence(0.6, failure, nil)
	if prev != 0.6 {
		t.Fatalf("Expected 0.6 before any attempt, got %v", prev)
	}

	// Each recorded attempt must strictly decrease the computed confidence.
	for i := 1; i <= 3; i++ {
		core.Run(context.Background(), failure, nil, routine)
		got := core.AdjustConfidence(0.6, failure, nil)
		want := 0.6 * math.Pow(0.8, float64(i))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Attempt %d: expected %v, got %v", i, want, got)
		}
		if got >= prev {
			t.Errorf("Attempt %d: confidence %v did not decrease from %v", i, got, prev)
		}
		prev = got
	}

	// Attempts are tracked per test: a fresh test id is not decayed.
	if got := core.AdjustConfidence(0.6, notFoundFailure("t2"), nil); got != 0.6 {
		t.Errorf("Expected undecayed 0.6 for new test, got %v", got)
	}
}

func TestCore_AdjustConfidence_HighLoadPenalty(t *testing.T) {
	core := newTestCore()
	failure := notFoundFailure("t1")

	loaded := &domain.HealingContext{SystemState: domain.SystemState{Load: 0.9}}
	if got := core.AdjustConfidence(0.6, failure, loaded); math.Abs(got-0.54) > 1e-9 {
		t.Errorf("Expected 0.54 under high load, got %v", got)
	}

	calm := &domain.HealingContext{SystemState: domain.SystemState{Load: 0.5}}
	if got := core.AdjustConfidence(0.6, failure, calm); got != 0.6 {
		t.Errorf("Expected no penalty under normal load, got %v", got)
	}
}

func TestCore_AdjustConfidence_SuccessRateAdjustment(t *testing.T) {
	succeed := func(core *Core) HealFunc {
		return func(ctx context.Context, f *domain.Failure, h *domain.HealingContext) *domain.HealingResult {
			return NewSuccessResult(core, 0.6, time.Millisecond, "ok")
		}
	}
	fail := func(core *Core) HealFunc {
		return func(ctx context.Context, f *domain.Failure, h *domain.HealingContext) *domain.HealingResult {
			return NewFailureResult(core, "miss", time.Millisecond)
		}
	}

	// Strong history earns a bonus. Attempts use distinct test ids so the
	// per-test decay does not interfere.
	strong := newTestCore()
	for i := 0; i < 6; i++ {
		strong.Run(context.Background(), notFoundFailure(testID(i)), nil, succeed(strong))
	}
	if got := strong.AdjustConfidence(0.6, notFoundFailure("fresh"), nil); math.Abs(got-0.66) > 1e-9 {
		t.Errorf("Expected 0.66 with strong history, got %v", got)
	}

	// Weak history is penalized.
	weak := newTestCore()
	for i := 0; i < 6; i++ {
		weak.Run(context.Background(), notFoundFailure(testID(i)), nil, fail(weak))
	}
	if got := weak.AdjustConfidence(0.6, notFoundFailure("fresh"), nil); math.Abs(got-0.48) > 1e-9 {
		t.Errorf("Expected 0.48 with weak history, got %v", got)
	}

	// Too few samples: no adjustment either way.
	cold := newTestCore()
	cold.Run(context.Background(), notFoundFailure("t1"), nil, fail(cold))
	if got := cold.AdjustConfidence(0.6, notFoundFailure("fresh"), nil); got != 0.6 {
		t.Errorf("Expected no rate adjustment under %d samples, got %v", minRateSamples, got)
	}
}

func TestCore_AdjustConfidence_Clamped(t *testing.T) {
	core := newTestCore()
	failure := notFoundFailure("t1")

	if got := core.AdjustConfidence(5.0, failure, nil); got != 1.0 {
		t.Errorf("Expected clamp to 1.0, got %v", got)
	}
	if got := core.AdjustConfidence(-1.0, failure, nil); got != 0 {
		t.Errorf("Expected clamp to 0, got %v", got)
	}
}

func TestCore_Run_UnsupportedKind(t *testing.T) {
	core := newTestCore()
	failure := domain.NewFailure("t1", domain.FailureAssertion, "expected 200 got 500", nil)
	called := false

	result := core.Run(context.Background(), failure, nil, func(ctx context.Context, f *domain.Failure, h *domain.HealingContext) *domain.HealingResult {
		called = true
		return NewSuccessResult(core, 0.5, 0, "ok")
	})

	if called {
		t.Error("Routine must not run for an unsupported failure kind")
	}
	if result.Success {
		t.Error("Expected failure result")
	}
	if core.AttemptCount("t1") != 0 {
		t.Error("Unsupported failures must not count as attempts")
	}
	stats := core.Statistics()
	if stats.SuccessCount != 0 || stats.FailureCount != 0 {
		t.Errorf("Unsupported failures must not touch counters, got %+v", stats)
	}
}

func TestCore_Run_RecoversPanic(t *testing.T) {
	core := newTestCore()
	failure := notFoundFailure("t1")

	result := core.Run(context.Background(), failure, nil, func(ctx context.Context, f *domain.Failure, h *domain.HealingContext) *domain.HealingResult {
		panic("boom")
	})

	if result == nil || result.Success {
		t.Fatal("Expected failure result from panicking routine")
	}
	if !strings.Contains(result.Message, "boom") {
		t.Errorf("Expected panic text in message, got %q", result.Message)
	}
	stats := core.Statistics()
	if stats.FailureCount != 1 {
		t.Errorf("Expected failure counted, got %+v", stats)
	}
}

func TestCore_Run_TracksCounters(t *testing.T) {
	core := newTestCore()
	failure := notFoundFailure("t1")

	core.Run(context.Background(), failure, nil, func(ctx context.Context, f *domain.Failure, h *domain.HealingContext) *domain.HealingResult {
		return NewSuccessResult(core, 0.6, 0, "ok")
	})
	core.Run(context.Background(), failure, nil, func(ctx context.Context, f *domain.Failure, h *domain.HealingContext) *domain.HealingResult {
		return NewFailureResult(core, "miss", 0)
	})

	stats := core.Statistics()
	if stats.SuccessCount != 1 || stats.FailureCount != 1 {
		t.Errorf("Expected 1/1 counters, got %+v", stats)
	}
	if stats.SuccessRate != 0.5 {
		t.Errorf("Expected rate 0.5, got %v", stats.SuccessRate)
	}
	if core.AttemptCount("t1") != 2 {
		t.Errorf("Expected 2 attempts for t1, got %d", core.AttemptCount("t1"))
	}

	core.ResetStatistics()
	stats = core.Statistics()
	if stats.SuccessCount != 0 || stats.FailureCount != 0 || core.AttemptCount("t1") != 0 {
		t.Error("Expected counters cleared after reset")
	}
}

func TestNewResult_Metadata(t *testing.T) {
	core := newTestCore()

	result := NewSuccessResult(core, 0.7, 5*time.Millisecond, "healed")
	if result.Metadata.Strategy != "test-strategy" || result.Metadata.Version != "1.0.0" {
		t.Errorf("Expected strategy identity in metadata, got %+v", result.Metadata)
	}
	if result.Metadata.Timestamp.IsZero() {
		t.Error("Expected metadata timestamp set")
	}
	if result.ID == "" {
		t.Error("Expected generated result ID")
	}

	clamped := NewSuccessResult(core, 1.7, 0, "over")
	if clamped.Confidence != 1.0 {
		t.Errorf("Expected confidence clamped to 1.0, got %v", clamped.Confidence)
	}
}

func testID(i int) string {
	return "test-" + string(rune('a'+i))
}
