package strategy

import (
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/healer/internal/core/domain"
)

// NewAction builds a single audit-trail action.
func NewAction(t domain.ActionType, description string, params map[string]string, outcome domain.ActionOutcome, message string) domain.HealingAction {
	return domain.HealingAction{
		Type:        t,
		Description: description,
		Parameters:  params,
		Timestamp:   time.Now(),
		Outcome:     outcome,
		Message:     message,
	}
}

// NewSuccessResult builds a successful HealingResult stamped with the
// strategy's identity.
func NewSuccessResult(c *Core, confidence float64, duration time.Duration, message string, actions ...domain.HealingAction) *domain.HealingResult {
	return newResult(c, true, ClampConfidence(confidence), duration, message, actions)
}

// NewFailureResult builds a failed HealingResult stamped with the
// strategy's identity.
func NewFailureResult(c *Core, message string, duration time.Duration, actions ...domain.HealingAction) *domain.HealingResult {
	return newResult(c, false, 0, duration, message, actions)
}

func newResult(c *Core, success bool, confidence float64, duration time.Duration, message string, actions []domain.HealingAction) *domain.HealingResult {
	return &domain.HealingResult{
		ID:         uuid.New().String(),
		Success:    success,
		Actions:    actions,
		Confidence: confidence,
		Duration:   duration,
		Message:    message,
		Metadata: domain.ResultMetadata{
			Strategy:  c.name,
			Version:   c.version,
			Timestamp: time.Now(),
		},
	}
}
