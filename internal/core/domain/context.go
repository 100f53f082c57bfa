package domain

// RiskTolerance expresses how aggressive the caller allows healing to be.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// SystemState is a snapshot of the test runner's resource situation at the
// time of the failure. All ratios are in [0,1].
type SystemState struct {
	Load        float64 `json:"load"`
	MemoryUsage float64 `json:"memory_usage"`
	CPUUsage    float64 `json:"cpu_usage"`
	DiskUsage   float64 `json:"disk_usage"`
	ActiveTests int     `json:"active_tests"`
	QueueLength int     `json:"queue_length"`
}

// UserPreferences carries caller preferences that strategies may consult.
type UserPreferences struct {
	PreferredStrategies []string      `json:"preferred_strategies,omitempty"`
	RiskTolerance       RiskTolerance `json:"risk_tolerance,omitempty"`
	NotifyOnHeal        bool          `json:"notify_on_heal"`
}

// HealingContext is supplied fresh by the caller on every heal call.
// Strategies treat it as read-only.
type HealingContext struct {
	AvailableStrategies []string        `json:"available_strategies,omitempty"`
	PriorAttempts       []AttemptRecord `json:"prior_attempts,omitempty"`
	SystemState         SystemState     `json:"system_state"`
	UserPreferences     UserPreferences `json:"user_preferences"`
}
