// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied by MergeWithDefaults when neither the config file nor a flag sets a value.
const (
	DefaultPort               = 8080
	DefaultRefreshConcurrency = 4
	DefaultRateLimitPerMinute = 120
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP listen port

	// Logging
	LogJSON bool `json:"log_json,omitempty"` // JSON log encoding instead of console
	Debug   bool `json:"debug,omitempty"`    // Debug log level

	// Limits
	RefreshConcurrency int `json:"refresh_concurrency,omitempty"`   // Parallel profile refreshes for bulk runs
	RateLimitPerMinute int `json:"rate_limit_per_minute,omitempty"` // Per-client request budget
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RefreshConcurrency < 0 {
		return fmt.Errorf("config error: 'refresh_concurrency' must be non-negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults, then from
// the package defaults. DATABASE_URL from the environment is used when no URL is configured.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}

	if result.RefreshConcurrency == 0 {
		result.RefreshConcurrency = defaults.RefreshConcurrency
	}
	if result.RefreshConcurrency == 0 {
		result.RefreshConcurrency = DefaultRefreshConcurrency
	}

	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = defaults.RateLimitPerMinute
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = DefaultRateLimitPerMinute
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
