// Package config loads the small set of environment-driven defaults the
// rrule CLI falls back on when a flag is not given explicitly.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the CLI's environment-derived defaults.
type Config struct {
	// DefaultZone is the IANA zone name the expand command applies when its
	// input has no DTSTART line (a bare RRULE).
	DefaultZone string
	// LogLevel is a zerolog level name: debug, info, warn, or error.
	LogLevel string
}

// Load reads RRULE_DEFAULT_TZ and RRULE_LOG_LEVEL from the environment,
// applying defaults of "UTC" and "info" respectively, and validates both.
func Load() (Config, error) {
	cfg := Config{
		DefaultZone: "UTC",
		LogLevel:    "info",
	}

	if tz := strings.TrimSpace(os.Getenv("RRULE_DEFAULT_TZ")); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return Config{}, fmt.Errorf("RRULE_DEFAULT_TZ: %w", err)
		}
		cfg.DefaultZone = tz
	}

	if level := strings.TrimSpace(os.Getenv("RRULE_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			return Config{}, fmt.Errorf("RRULE_LOG_LEVEL: unrecognized level %q", level)
		}
	}

	return cfg, nil
}
