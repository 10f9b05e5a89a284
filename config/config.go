// Package config loads heatree's optional YAML settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultWindowDays is the analysis window used when nothing else is set.
const DefaultWindowDays = 30

// Config holds user settings. Command line flags override these values.
type Config struct {
	WindowDays      int      `yaml:"windowDays"`
	Exclude         []string `yaml:"exclude"`
	DefaultExcludes bool     `yaml:"defaultExcludes"`
	Gitignore       bool     `yaml:"gitignore"`
	ExpandAll       bool     `yaml:"expandAll"`
	LogLevel        string   `yaml:"logLevel"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		WindowDays: DefaultWindowDays,
		Exclude:    []string{},
		LogLevel:   "info",
	}
}

// DefaultPath returns <user config dir>/heatree/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "heatree", "config.yaml"), nil
}

// LoadConfig reads path on top of DefaultConfig. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.WindowDays <= 0 {
		return fmt.Errorf("windowDays must be positive, got %d", c.WindowDays)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logLevel %q", c.LogLevel)
	}
	return nil
}
