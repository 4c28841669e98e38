package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config file when a path is given, otherwise
// returns the defaults with environment overrides applied and validated.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and compiles the fallback
// zone.
func Validate(cfg *Config) error {
	loc, err := ParseZone(cfg.FallbackZone)
	if err != nil {
		return fmt.Errorf("fallback_zone: %w", err)
	}
	cfg.location = loc

	if cfg.FutureTolerance < 0 {
		return fmt.Errorf("future_tolerance: must not be negative, got %s", cfg.FutureTolerance)
	}

	switch cfg.Output {
	case "text", "json":
	default:
		return fmt.Errorf("output: invalid format %q (must be text or json)", cfg.Output)
	}

	return nil
}

var fixedOffsetRe = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})$`)

// ParseZone resolves a zone name from configuration or flags. "" and
// "Local" mean the system zone, "UTC" and "Z" mean UTC, "+02:00" / "-0700"
// build a fixed offset, anything else is looked up as an IANA zone name.
func ParseZone(name string) (*time.Location, error) {
	switch name {
	case "", "Local":
		return time.Local, nil
	case "UTC", "Z":
		return time.UTC, nil
	}

	if m := fixedOffsetRe.FindStringSubmatch(name); m != nil {
		hh, _ := strconv.Atoi(m[2])
		mm, _ := strconv.Atoi(m[3])
		sec := hh*3600 + mm*60
		if m[1] == "-" {
			sec = -sec
		}
		if sec <= -24*3600 || sec >= 24*3600 {
			return nil, fmt.Errorf("fixed offset %q out of range", name)
		}
		return time.FixedZone(name, sec), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown zone %q: %w", name, err)
	}
	return loc, nil
}
