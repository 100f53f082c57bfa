// Package health provides engine health monitoring and the observability
// HTTP surface consumed by dashboards and reporting.
package health

// Status represents the overall health state of the healing engine.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusCritical Status = "critical"
)

// StrategyHealth contains health metrics for a single strategy.
type StrategyHealth struct {
	Attempts    int     `json:"attempts"`
	SuccessRate float64 `json:"success_rate"`
	Status      Status  `json:"status"`
}

// Report contains the full engine health report.
type Report struct {
	Status          Status                    `json:"status"`
	TotalAttempts   int                       `json:"total_attempts"`
	SuccessRate     float64                   `json:"success_rate"`
	AverageDuration string                    `json:"average_duration"`
	Strategies      map[string]StrategyHealth `json:"strategies"`
}
