package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/model"
	"github.com/tempo-cli/tempo/internal/parser"
)

// Stop command flags.
var (
	stopFlagAt string
)

// stopCmd represents the stop command.
var stopCmd = &cobra.Command{
	Use:     "stop",
	Aliases: []string{"end", "e"},
	Short:   "Stop the current time tracking",
	Long: `Stop the currently running timer, fixing the entry's duration.

The stop time must be after the entry's start; a stop in the past that
predates the start is rejected rather than clamped.

Examples:
  tempo stop
  tempo stop --at "10 minutes ago"`,
	Args: cobra.NoArgs,
	RunE: runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopFlagAt, "at", "", "End timestamp (default: now)")
}

func runStop(cmd *cobra.Command, args []string) error {
	at, err := parser.ParseTimestamp(stopFlagAt, time.Now())
	if err != nil {
		return err
	}

	var stopped *model.Entry
	err = ctx.WithLedger(func(l *ledger.Ledger) error {
		stopped, err = ledger.NewMachine(l).Stop(at)
		return err
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry("stop", stopped)
	}

	ctx.CLIFormatter().PrintStopped(stopped)
	return nil
}
