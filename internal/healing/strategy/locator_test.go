package strategy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vietddude/healer/internal/core/domain"
)

func TestExtractLocator(t *testing.T) {
	tests := []struct {
		name    string
		message string
		context map[string]string
		want    string
		found   bool
	}{
		{
			name:    "from message pattern",
			message: "element not found, selector: #login-btn",
			want:    "#login-btn",
			found:   true,
		},
		{
			name:    "message pattern wins over context",
			message: "selector: .from-message",
			context: map[string]string{domain.ContextKeySelector: ".from-context"},
			want:    ".from-message",
			found:   true,
		},
		{
			name:    "from selector key",
			message: "element not found",
			context: map[string]string{domain.ContextKeySelector: "#save"},
			want:    "#save",
			found:   true,
		},
		{
			name:    "from locator key",
			message: "element not found",
			context: map[string]string{domain.ContextKeyLocator: `//button[@id="save"]`},
			want:    `//button[@id="save"]`,
			found:   true,
		},
		{
			name:    "no locator anywhere",
			message: "element not found",
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := domain.NewFailure("t1", domain.FailureElementNotFound, tt.message, tt.context)
			got, found := ExtractLocator(failure)
			if found != tt.found {
				t.Fatalf("Expected found=%v, got %v", tt.found, found)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLocatorSeed(t *testing.T) {
	tests := []struct {
		locator string
		want    string
	}{
		{"#save-btn", "save-btn"},
		{".submit-button", "submit-button"},
		{"save-btn", "save-btn"},
		{`[data-testid="save-btn"]`, "save-btn"},
		{`[name='user']`, "user"},
		{"//div/button", "button"},
		{`//*[@id="save"]`, "save"},
		{"#modal .confirm", "modal"},
		{".btn:first-child", "btn"},
	}

	for _, tt := range tests {
		if got := LocatorSeed(tt.locator); got != tt.want {
			t.Errorf("LocatorSeed(%q): expected %q, got %q", tt.locator, tt.want, got)
		}
	}
}

func TestCapCandidates(t *testing.T) {
	candidates := []Candidate{
		{Locator: "a"}, {Locator: "b"}, {Locator: "c"},
	}

	if got := CapCandidates(candidates, 2); len(got) != 2 || got[0].Locator != "a" {
		t.Errorf("Expected first 2 candidates, got %v", got)
	}
	if got := CapCandidates(candidates, 5); len(got) != 3 {
		t.Errorf("Expected untouched list, got %v", got)
	}
	if got := CapCandidates(candidates, 0); len(got) != 3 {
		t.Errorf("Expected untouched list for non-positive cap, got %v", got)
	}
}

// =============================================================================
// Probe loop
// =============================================================================

type recordingProbe struct {
	mu     sync.Mutex
	known  map[string]bool
	err    error
	probed []string
}

func (p *recordingProbe) Probe(ctx context.Context, locator string, hctx *domain.HealingContext) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probed = append(p.probed, locator)
	if p.err != nil {
		return false, p.err
	}
	return p.known[locator], nil
}

func TestProbeCandidates_FirstSuccessWins(t *testing.T) {
	probe := &recordingProbe{known: map[string]bool{"b": true, "c": true}}
	candidates := []Candidate{
		{Locator: "a", Confidence: 0.7, Family: "attribute"},
		{Locator: "b", Confidence: 0.6, Family: "class"},
		{Locator: "c", Confidence: 0.9, Family: "attribute"},
	}

	match, actions := ProbeCandidates(context.Background(), probe, nil, candidates)
	if match == nil || match.Locator != "b" {
		t.Fatalf("Expected first matching candidate b, got %+v", match)
	}
	if len(probe.probed) != 2 {
		t.Errorf("Expected probing to stop at first success, probed %v", probe.probed)
	}
	if len(actions) != 2 {
		t.Fatalf("Expected 2 audit actions, got %d", len(actions))
	}
	if actions[0].Outcome != domain.OutcomeFailure || actions[1].Outcome != domain.OutcomeSuccess {
		t.Errorf("Expected failure then success actions, got %v %v", actions[0].Outcome, actions[1].Outcome)
	}
}

func TestProbeCandidates_AllMiss(t *testing.T) {
	probe := &recordingProbe{known: map[string]bool{}}
	candidates := []Candidate{{Locator: "a"}, {Locator: "b"}}

	match, actions := ProbeCandidates(context.Background(), probe, nil, candidates)
	if match != nil {
		t.Fatalf("Expected no match, got %+v", match)
	}
	if len(actions) != 2 {
		t.Fatalf("Expected an audit action per candidate, got %d", len(actions))
	}
	for _, action := range actions {
		if action.Type != domain.ActionFallbackStrategy || action.Outcome != domain.OutcomeFailure {
			t.Errorf("Expected fallback_strategy failure action, got %+v", action)
		}
	}
}

func TestProbeCandidates_ErrorCountsAsMiss(t *testing.T) {
	probe := &recordingProbe{err: errors.New("page crashed")}
	candidates := []Candidate{{Locator: "a"}}

	match, actions := ProbeCandidates(context.Background(), probe, nil, candidates)
	if match != nil {
		t.Fatal("Expected probe error to count as a miss")
	}
	if len(actions) != 1 || actions[0].Message == "" {
		t.Errorf("Expected action carrying the probe error, got %+v", actions)
	}
}

func TestProbeCandidates_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	probe := &recordingProbe{known: map[string]bool{}}
	candidates := []Candidate{{Locator: "a"}, {Locator: "b"}, {Locator: "c"}}

	_, actions := ProbeCandidates(ctx, probe, nil, candidates)
	if len(actions) != 1 {
		t.Errorf("Expected loop to stop after first probe on canceled context, got %d actions", len(actions))
	}
}
