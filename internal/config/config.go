// Package config loads runtime configuration for the demo CLI from an
// optional YAML file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimeout  = 8 * time.Second
	defaultLogLevel = "info"

	envBaseURL  = "STOREFRONT_BASE_URL"
	envToken    = "STOREFRONT_TOKEN"
	envTimeout  = "STOREFRONT_TIMEOUT"
	envLogLevel = "LOG_LEVEL"
)

// ErrBaseURLMissing indicates neither the config file nor the environment
// provided an API base URL.
var ErrBaseURLMissing = errors.New("config: base url is required")

// Duration wraps time.Duration with YAML support for values like "8s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config captures the CLI's runtime configuration.
type Config struct {
	BaseURL  string   `yaml:"base_url"`
	Token    string   `yaml:"token"`
	Timeout  Duration `yaml:"timeout"`
	LogLevel string   `yaml:"log_level"`
}

// Load reads the optional YAML file at path, applies environment overrides,
// and fills defaults. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Config{
		Timeout:  Duration(defaultTimeout),
		LogLevel: defaultLogLevel,
	}

	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envToken)); v != "" {
		cfg.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(envTimeout)); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid %s %q: %w", envTimeout, v, err)
		}
		cfg.Timeout = Duration(parsed)
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = v
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return Config{}, ErrBaseURLMissing
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = Duration(defaultTimeout)
	}
	return cfg, nil
}
