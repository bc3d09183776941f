// Package cli wires the rrule engine to a command-line front end. It is a
// thin adapter over the engine, the same way the FFI boundary in the rrule
// package itself is: no recurrence logic lives here, only flag parsing,
// textual input/output, and logging.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gocal/rrule/internal/config"
)

var (
	cfg config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "rrule",
	Short:         "Expand RFC 5545 recurrence rules into occurrence lists",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with the given logger and configuration, returning
// any error the invoked subcommand produced.
func Execute(logger zerolog.Logger, c config.Config) error {
	log = logger
	cfg = c
	return rootCmd.Execute()
}
