// Package control assembles the healing engine, its strategies and the
// observability server into a runnable application.
package control

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vietddude/healer/internal/core/config"
	"github.com/vietddude/healer/internal/healing/engine"
	"github.com/vietddude/healer/internal/healing/health"
	"github.com/vietddude/healer/internal/healing/strategy"
	"github.com/vietddude/healer/internal/healing/strategy/css"
	"github.com/vietddude/healer/internal/healing/strategy/neighbor"
	"github.com/vietddude/healer/internal/healing/strategy/retry"
	"github.com/vietddude/healer/internal/healing/strategy/xpath"
	"github.com/vietddude/healer/internal/infra/probe"
)

// Config holds the application configuration.
type Config struct {
	Port       int
	Engine     engine.Config
	Strategies config.StrategiesConfig
	Probe      config.ProbeConfig
}

// Healer is the main application struct managing the engine lifecycle.
type Healer struct {
	cfg          Config
	engine       *engine.Engine
	healthServer *health.Server
	serverErr    chan error
}

// NewHealer wires the engine with the four built-in strategies. A nil
// locatorProbe falls back to a static probe seeded from configuration.
func NewHealer(cfg Config, locatorProbe strategy.LocatorProbe) (*Healer, error) {
	if locatorProbe == nil {
		locatorProbe = probe.NewStatic(cfg.Probe.KnownLocators)
	}

	eng := engine.New(cfg.Engine)
	eng.RegisterStrategy(retry.New(locatorProbe, cfg.Strategies.Retry))
	eng.RegisterStrategy(css.New(locatorProbe, cfg.Strategies.CSS))
	eng.RegisterStrategy(xpath.New(locatorProbe, cfg.Strategies.XPath))
	eng.RegisterStrategy(neighbor.New(locatorProbe, cfg.Strategies.Neighbor))

	monitor := health.NewMonitor(eng)
	server := health.NewServer(monitor, eng, cfg.Port)

	return &Healer{
		cfg:          cfg,
		engine:       eng,
		healthServer: server,
		serverErr:    make(chan error, 1),
	}, nil
}

// Engine exposes the orchestrator to callers embedding the Healer.
func (h *Healer) Engine() *engine.Engine {
	return h.engine
}

// Start launches the observability server in the background.
func (h *Healer) Start(ctx context.Context) error {
	go func() {
		if err := h.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Health server failed", "error", err)
			h.serverErr <- err
		}
	}()
	slog.Info("Healer started", "port", h.cfg.Port)
	return nil
}

// Stop shuts the observability server down gracefully.
func (h *Healer) Stop(ctx context.Context) error {
	if err := h.healthServer.Stop(ctx); err != nil {
		return err
	}
	select {
	case err := <-h.serverErr:
		return err
	default:
		return nil
	}
}
