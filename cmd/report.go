package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/parser"
	"github.com/tempo-cli/tempo/internal/report"
)

// Report command flags.
var (
	reportFlagFrom        string
	reportFlagTo          string
	reportFlagIncludeOpen bool
)

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:     "report [PERIOD]",
	Aliases: []string{"r"},
	Short:   "Summarize tracked time per activity and tag",
	Long: `Sum tracked durations over a period, grouped by activity and by tag.
The period is half-open: an entry contributes only the part of its
interval that overlaps it.

The period can be a word like "today", "yesterday", "this week" or
"last month", or an explicit range via --from and --to.

Examples:
  tempo report
  tempo report last week
  tempo report --from "2026-08-01T00:00:00Z" --to "2026-09-01T00:00:00Z"
  tempo report today --include-open`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFlagFrom, "from", "", "Range start (overrides PERIOD)")
	reportCmd.Flags().StringVar(&reportFlagTo, "to", "", "Range end (overrides PERIOD)")
	reportCmd.Flags().BoolVar(&reportFlagIncludeOpen, "include-open", false,
		"Count the running entry up to now")
}

func runReport(cmd *cobra.Command, args []string) error {
	now := time.Now()

	window, err := reportWindow(cmd, args, now)
	if err != nil {
		return err
	}

	var summary *report.Summary
	err = ctx.ViewLedger(func(l *ledger.Ledger) error {
		summary, err = report.Totals(l.Entries, window, report.Options{
			IncludeOpen: reportFlagIncludeOpen,
			Now:         now,
		})
		return err
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSummary(summary)
	}

	ctx.CLIFormatter().PrintSummary(summary)
	return nil
}

// reportWindow resolves the period words or the --from/--to pair into a
// half-open window. Explicit flags win over the period argument.
func reportWindow(cmd *cobra.Command, args []string, now time.Time) (report.Window, error) {
	if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
		from, err := parser.ParseTimestamp(reportFlagFrom, now)
		if err != nil {
			return report.Window{}, err
		}
		to := now
		if cmd.Flags().Changed("to") {
			if to, err = parser.ParseTimestamp(reportFlagTo, now); err != nil {
				return report.Window{}, err
			}
		}
		return report.Window{From: from, To: to}, nil
	}

	start, end, err := parser.ParseRange(strings.Join(args, " "), now)
	if err != nil {
		return report.Window{}, err
	}
	return report.Window{From: start, To: end}, nil
}
