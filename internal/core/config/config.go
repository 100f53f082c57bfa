package config

import (
	"github.com/vietddude/healer/internal/healing/engine"
	"github.com/vietddude/healer/internal/healing/strategy/css"
	"github.com/vietddude/healer/internal/healing/strategy/neighbor"
	"github.com/vietddude/healer/internal/healing/strategy/retry"
	"github.com/vietddude/healer/internal/healing/strategy/xpath"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Engine     engine.Config    `yaml:"engine"`
	Strategies StrategiesConfig `yaml:"strategies"`
	Probe      ProbeConfig      `yaml:"probe"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// StrategiesConfig holds per-strategy settings.
type StrategiesConfig struct {
	Retry    retry.Config    `yaml:"retry"`
	CSS      css.Config      `yaml:"css"`
	XPath    xpath.Config    `yaml:"xpath"`
	Neighbor neighbor.Config `yaml:"neighbor"`
}

// ProbeConfig seeds the built-in static locator probe. Deployments that
// inject a real probe leave this empty.
type ProbeConfig struct {
	KnownLocators []string `yaml:"known_locators"`
}
