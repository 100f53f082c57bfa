package engine

import "time"

// Config holds the orchestrator knobs.
type Config struct {
	MaxAttempts            int           `yaml:"max_attempts"`
	MinConfidenceThreshold float64       `yaml:"min_confidence_threshold"`
	StrategyTimeout        time.Duration `yaml:"strategy_timeout"`
	EnableMetrics          bool          `yaml:"enable_metrics"`
	EnableDetailedLogging  bool          `yaml:"enable_detailed_logging"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:            3,
		MinConfidenceThreshold: 0.3,
		StrategyTimeout:        30 * time.Second,
		EnableMetrics:          true,
		EnableDetailedLogging:  false,
	}
}

// ConfigPatch is a partial runtime reconfiguration; nil fields keep their
// current value.
type ConfigPatch struct {
	MaxAttempts            *int           `json:"max_attempts,omitempty"`
	MinConfidenceThreshold *float64       `json:"min_confidence_threshold,omitempty"`
	StrategyTimeout        *time.Duration `json:"strategy_timeout,omitempty"`
	EnableMetrics          *bool          `json:"enable_metrics,omitempty"`
	EnableDetailedLogging  *bool          `json:"enable_detailed_logging,omitempty"`
}
