// Package config provides configuration loading and validation for anylog.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Sources lists log files or glob patterns to process.
	Sources []string `yaml:"sources"`

	// FallbackZone is applied to timestamps without an explicit UTC
	// offset. Accepts "Local", "UTC", a fixed offset like "+02:00" or
	// "-0700", or an IANA zone name like "Europe/Vienna".
	FallbackZone string `yaml:"fallback_zone"`

	// FutureTolerance is how far ahead of the reference clock an
	// inferred date may land before the year rolls back by one.
	FutureTolerance time.Duration `yaml:"future_tolerance"`

	// Output selects the report format: text or json.
	Output string `yaml:"output"`

	// location is the compiled fallback zone (populated during
	// validation).
	location *time.Location
}

// Location returns the compiled fallback zone. Only valid after Validate.
func (c *Config) Location() *time.Location {
	return c.location
}
