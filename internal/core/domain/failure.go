package domain

import (
	"time"

	"github.com/google/uuid"
)

// FailureKind classifies why a test step failed
type FailureKind string

const (
	FailureElementNotFound FailureKind = "element_not_found"
	FailureTimeout         FailureKind = "timeout"
	FailureAssertion       FailureKind = "assertion_failed"
	FailureNetwork         FailureKind = "network_error"
	FailureConfiguration   FailureKind = "configuration_error"
	FailureEnvironment     FailureKind = "environment_error"
	FailureUnknown         FailureKind = "unknown"
)

// Conventional keys for the failure context map.
const (
	ContextKeySelector = "selector"
	ContextKeyLocator  = "locator"
)

// Failure represents a single failed test step reported by the test engine.
// It is immutable once constructed.
type Failure struct {
	ID            string            `json:"id"`
	TestID        string            `json:"test_id"`
	Kind          FailureKind       `json:"kind"`
	Message       string            `json:"message"`
	Timestamp     time.Time         `json:"timestamp"`
	Context       map[string]string `json:"context,omitempty"`
	PriorAttempts []AttemptRecord   `json:"prior_attempts,omitempty"`
}

// NewFailure creates a Failure with a generated ID and the current timestamp.
func NewFailure(testID string, kind FailureKind, message string, context map[string]string) *Failure {
	return &Failure{
		ID:        uuid.New().String(),
		TestID:    testID,
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
		Context:   context,
	}
}
