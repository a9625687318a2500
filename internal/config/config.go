// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a file and the environment on top of New().
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration shared by both services.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoder: json or console.
	LogFormat string `koanf:"log_format"`

	// PassengersAddr is the listen address of the passenger query service.
	PassengersAddr string `koanf:"passengers_addr"`

	// PredictorAddr is the listen address of the survival scoring service.
	PredictorAddr string `koanf:"predictor_addr"`

	// DataPath points at the passenger dataset (.json or .csv).
	DataPath string `koanf:"data_path"`

	// PathPrefix is where the passenger routes are mounted.
	PathPrefix string `koanf:"path_prefix"`

	// DefaultPageLimit is used when ?limit is absent or unparseable.
	DefaultPageLimit int `koanf:"default_page_limit"`

	// CORSAllowedOrigins lists origins allowed by the CORS handler.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimitRPS and RateLimitBurst configure the per-process token bucket.
	// A zero RPS disables rate limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// ShutdownTimeoutSec bounds graceful shutdown.
	ShutdownTimeoutSec int `koanf:"shutdown_timeout_sec"`

	// PlaceholderAccuracy is reported by the predictor stats endpoint. It is
	// not measured against anything.
	PlaceholderAccuracy string `koanf:"placeholder_accuracy"`

	// MetricsEnabled turns metric recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsRefreshSec is how often system gauges are refreshed.
	MetricsRefreshSec int `koanf:"metrics_refresh_sec"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "json",
		PassengersAddr:      ":3000",
		PredictorAddr:       ":5000",
		DataPath:            "data/passengers.json",
		PathPrefix:          "/api/passengers",
		DefaultPageLimit:    20,
		CORSAllowedOrigins:  []string{"*"},
		RateLimitRPS:        0,
		RateLimitBurst:      50,
		ShutdownTimeoutSec:  30,
		PlaceholderAccuracy: "82.12%",
		MetricsEnabled:      true,
		MetricsRefreshSec:   10,
	}
}

// ShutdownTimeout returns ShutdownTimeoutSec as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}

// MetricsRefreshInterval returns MetricsRefreshSec as a duration.
func (c *Config) MetricsRefreshInterval() time.Duration {
	return time.Duration(c.MetricsRefreshSec) * time.Second
}

// Validate checks the fields that the services cannot run without.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.PassengersAddr) == "":
		return fmt.Errorf("%w: passengers_addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.PredictorAddr) == "":
		return fmt.Errorf("%w: predictor_addr must not be empty", ErrInvalidConfig)
	case c.PathPrefix != "" && !strings.HasPrefix(c.PathPrefix, "/"):
		return fmt.Errorf("%w: path_prefix must start with /", ErrInvalidConfig)
	case c.DefaultPageLimit < 1:
		return fmt.Errorf("%w: default_page_limit must be positive", ErrInvalidConfig)
	case c.RateLimitRPS < 0:
		return fmt.Errorf("%w: rate_limit_rps must not be negative", ErrInvalidConfig)
	case c.RateLimitRPS > 0 && c.RateLimitBurst < 1:
		return fmt.Errorf("%w: rate_limit_burst must be positive when rate limiting", ErrInvalidConfig)
	case c.MetricsRefreshSec < 1:
		return fmt.Errorf("%w: metrics_refresh_sec must be positive", ErrInvalidConfig)
	}
	return nil
}
