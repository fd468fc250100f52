package config

import (
	"fmt"
	"os"
	"strings"
)

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %s", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("unknown format %s", c.Format)
	}
	return nil
}

// Apply exports the settings read by infra/logger. Explicit environment wins.
func (c LoggingConfig) Apply() {
	if os.Getenv("LOG_LEVEL") == "" {
		_ = os.Setenv("LOG_LEVEL", strings.ToLower(c.Level))
	}
	if c.Format == "console" && os.Getenv("APP_ENV") == "" {
		_ = os.Setenv("APP_ENV", "dev")
	}
}

// HTTPConfig configures the plans API.
type HTTPConfig struct {
	Addr string `json:"addr"`
	// RateLimit is the sustained number of plan requests per second; zero disables limiting.
	RateLimit float64 `json:"rate_limit"`
	Burst     int     `json:"burst"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.RateLimit > 0 && c.Burst <= 0 {
		c.Burst = 1
	}
}

// Validate checks mandatory fields.
func (c HTTPConfig) Validate() error {
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be non-negative")
	}
	return nil
}
