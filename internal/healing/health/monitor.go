package health

import (
	"sync"
	"time"

	"github.com/vietddude/healer/internal/healing/engine"
)

// Rate thresholds for status evaluation. Rates are only meaningful once a
// minimum number of attempts has been seen.
const (
	criticalRate        = 0.2
	criticalMinAttempts = 10
	degradedRate        = 0.5
	degradedMinAttempts = 5
	strategyWeakRate    = 0.3

	checkInterval = 10 * time.Second
)

// Monitor derives a health report from the engine's aggregate statistics.
type Monitor struct {
	engine     *engine.Engine
	mu         sync.Mutex
	lastCheck  time.Time
	lastReport Report
}

// NewMonitor creates a health monitor over the engine.
func NewMonitor(eng *engine.Engine) *Monitor {
	return &Monitor{engine: eng}
}

// Check produces the current health report. Reports are cached briefly so
// dashboards polling aggressively do not hammer the engine lock.
func (m *Monitor) Check() Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastCheck) < checkInterval && m.lastReport.Strategies != nil {
		return m.lastReport
	}

	stats := m.engine.Stats()
	report := Report{
		Status:          StatusHealthy,
		TotalAttempts:   stats.TotalAttempts,
		SuccessRate:     stats.SuccessRate,
		AverageDuration: stats.AverageDuration.String(),
		Strategies:      make(map[string]StrategyHealth, len(stats.ByStrategy)),
	}

	weakStrategy := false
	for name, rates := range stats.ByStrategy {
		sh := StrategyHealth{
			Attempts:    rates.Attempts,
			SuccessRate: rates.SuccessRate,
			Status:      StatusHealthy,
		}
		if rates.Attempts >= degradedMinAttempts && rates.SuccessRate < strategyWeakRate {
			sh.Status = StatusDegraded
			weakStrategy = true
		}
		report.Strategies[name] = sh
	}

	switch {
	case stats.TotalAttempts >= criticalMinAttempts && stats.SuccessRate < criticalRate:
		report.Status = StatusCritical
	case stats.TotalAttempts >= degradedMinAttempts && stats.SuccessRate < degradedRate:
		report.Status = StatusDegraded
	case weakStrategy:
		report.Status = StatusDegraded
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return report
}
