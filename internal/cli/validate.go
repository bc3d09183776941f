package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gocal/rrule"
)

var validateSet string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse an RRULE property list and print its canonical re-encoding",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(validateSet)
		if text == "" {
			data, err := io.ReadAll(bufio.NewReader(cmd.InOrStdin()))
			if err != nil {
				return fmt.Errorf("reading rule from stdin: %w", err)
			}
			text = strings.TrimSpace(string(data))
		}
		text = strings.TrimPrefix(text, "RRULE:")

		rule, err := rrule.ParseRRule(text)
		if err != nil {
			log.Error().Err(err).Msg("rule failed to parse")
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), rule.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateSet, "rule", "", "RRULE property list (reads stdin when omitted)")
}
