package config

import (
	"os"

	"github.com/getsentry/anylog/pkg/anylog"
)

// Default values for configuration.
const (
	DefaultFallbackZone = "Local"
	DefaultOutput       = "text"
)

// Environment variable names.
const (
	EnvFallbackZone = "ANYLOG_FALLBACK_ZONE"
	EnvOutput       = "ANYLOG_OUTPUT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		FallbackZone:    DefaultFallbackZone,
		FutureTolerance: anylog.DefaultFutureTolerance,
		Output:          DefaultOutput,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the
// config.
func (c *Config) applyEnvironmentOverrides() {
	if zone := os.Getenv(EnvFallbackZone); zone != "" {
		c.FallbackZone = zone
	}
	if format := os.Getenv(EnvOutput); format != "" {
		c.Output = format
	}
}
