package domain

import "time"

// ActionType enumerates the kinds of recovery actions a strategy can take.
type ActionType string

const (
	ActionRetry               ActionType = "retry"
	ActionUpdateSelector      ActionType = "update_selector"
	ActionWaitForElement      ActionType = "wait_for_element"
	ActionUpdateConfiguration ActionType = "update_configuration"
	ActionSkipTest            ActionType = "skip_test"
	ActionFallbackStrategy    ActionType = "fallback_strategy"
)

// ActionOutcome records how a single action ended.
type ActionOutcome string

const (
	OutcomeSuccess ActionOutcome = "success"
	OutcomeFailure ActionOutcome = "failure"
	OutcomeSkipped ActionOutcome = "skipped"
)

// HealingAction is one entry in the audit trail of a healing attempt.
type HealingAction struct {
	Type        ActionType        `json:"type"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	Outcome     ActionOutcome     `json:"outcome"`
	Message     string            `json:"message,omitempty"`
}

// ResultMetadata identifies the producer of a HealingResult. Extra holds
// genuinely free-form data; the known fields are typed on purpose.
type ResultMetadata struct {
	Strategy  string            `json:"strategy"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// HealingResult is the outcome of one healing attempt. Produced exactly once
// per orchestrator call and immutable afterwards. Confidence is in [0,1].
type HealingResult struct {
	ID         string          `json:"id"`
	Success    bool            `json:"success"`
	Actions    []HealingAction `json:"actions,omitempty"`
	Confidence float64         `json:"confidence"`
	Duration   time.Duration   `json:"duration"`
	Message    string          `json:"message"`
	Metadata   ResultMetadata  `json:"metadata"`
}
