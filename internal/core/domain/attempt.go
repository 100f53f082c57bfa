package domain

import "time"

// AttemptRecord is the compact per-test record of one healing attempt,
// kept by the orchestrator to enforce the maximum-attempts cap.
type AttemptRecord struct {
	Strategy   string        `json:"strategy"`
	Success    bool          `json:"success"`
	Confidence float64       `json:"confidence"`
	Duration   time.Duration `json:"duration"`
	Message    string        `json:"message,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}
