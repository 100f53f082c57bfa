package config

import (
	"fmt"
	"os"

	"github.com/vietddude/healer/internal/healing/engine"
	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file. Fields absent from the file
// keep their defaults; ${VAR} references are expanded from the environment.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultAppConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	expandEnv(&cfg)

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	return &cfg, nil
}

// expandEnv resolves ${VAR} references in the string fields. Expansion runs
// after unmarshaling so values containing YAML metacharacters (selectors,
// XPath expressions) survive parsing intact.
func expandEnv(cfg *AppConfig) {
	cfg.Logging.Level = os.ExpandEnv(cfg.Logging.Level)
	cfg.Logging.Format = os.ExpandEnv(cfg.Logging.Format)
	for i, locator := range cfg.Probe.KnownLocators {
		cfg.Probe.KnownLocators[i] = os.ExpandEnv(locator)
	}
}

// defaultAppConfig pre-fills defaults so an explicit false/zero in the file
// still wins over them after unmarshaling.
func defaultAppConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{Port: 8080},
		Engine: engine.DefaultConfig(),
	}
}
