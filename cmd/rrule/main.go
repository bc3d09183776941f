// Command rrule expands RFC 5545 recurrence rules from the shell, as a thin
// caller of the rrule package's parsing and expansion API.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/gocal/rrule/internal/cli"
	"github.com/gocal/rrule/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).With().Timestamp().Logger().Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	if err := cli.Execute(logger, cfg); err != nil {
		logger.Error().Err(err).Msg("rrule command failed")
		os.Exit(1)
	}
}
