package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gocal/rrule"
)

var (
	expandSet          string
	expandBetweenStart string
	expandBetweenEnd   string
	expandFormat       string
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Expand a DTSTART/RRULE pair into its occurrence list",
	Long: `Expand reads the two-line "DTSTART[;TZID=zone]:ts\nRRULE:props" form
(via --set, or from stdin when --set is omitted) and prints every occurrence
it produces: one per line in RFC 3339 form, or as a single comma-joined line
of Unix milliseconds with --format millis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readSetText(cmd)
		if err != nil {
			return err
		}

		set, err := rrule.ParseRRuleSet(text)
		if err != nil {
			log.Error().Err(err).Msg("failed to parse recurrence set")
			return err
		}

		// A bare RRULE line (no DTSTART) leaves the set on the parser's UTC
		// default; apply the configured default rather than forcing the
		// caller to repeat it on every invocation.
		if !strings.Contains(text, "DTSTART") {
			loc, err := time.LoadLocation(cfg.DefaultZone)
			if err != nil {
				return fmt.Errorf("default zone: %w", err)
			}
			set.Zone = loc
			log.Debug().Str("zone", cfg.DefaultZone).Msg("applied default zone")
		}

		if expandBetweenStart != "" || expandBetweenEnd != "" {
			if err := set.Between(expandBetweenStart, expandBetweenEnd); err != nil {
				log.Error().Err(err).Msg("failed to apply between window")
				return err
			}
		}

		switch expandFormat {
		case "millis":
			fmt.Fprintln(cmd.OutOrStdout(), set.AllMillis())
		default:
			for _, t := range set.All() {
				fmt.Fprintln(cmd.OutOrStdout(), t.Format("2006-01-02T15:04:05Z07:00"))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().StringVar(&expandSet, "set", "", "DTSTART/RRULE text (reads stdin when omitted)")
	expandCmd.Flags().StringVar(&expandBetweenStart, "between-start", "", "YYYYMMDDTHHMMSS[Z] lower window bound")
	expandCmd.Flags().StringVar(&expandBetweenEnd, "between-end", "", "YYYYMMDDTHHMMSS[Z] upper window bound")
	expandCmd.Flags().StringVar(&expandFormat, "format", "rfc3339", "Output format: rfc3339|millis")
}

func readSetText(cmd *cobra.Command) (string, error) {
	if strings.TrimSpace(expandSet) != "" {
		return expandSet, nil
	}

	data, err := io.ReadAll(bufio.NewReader(cmd.InOrStdin()))
	if err != nil {
		return "", fmt.Errorf("reading recurrence set from stdin: %w", err)
	}
	return string(data), nil
}
