package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/model"
	"github.com/tempo-cli/tempo/internal/tui"
)

// Status command flags.
var (
	statusFlagWatch bool
)

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the current tracking state",
	Long: `Show whether a timer is running and for how long.

With --watch the status stays on screen and the elapsed duration updates
every second. The view works from a snapshot, so the ledger is not kept
locked while watching.

Examples:
  tempo status
  tempo status --watch`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusFlagWatch, "watch", "w", false, "Live-updating status view")
}

func runStatus(cmd *cobra.Command, args []string) error {
	var open *model.Entry
	err := ctx.ViewLedger(func(l *ledger.Ledger) error {
		if e := l.Open(); e != nil {
			open = e.Clone()
		}
		return nil
	})
	if err != nil {
		return err
	}

	if statusFlagWatch {
		return tui.RunStatusWatch(open)
	}

	now := time.Now()
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStatus(open, now)
	}

	ctx.CLIFormatter().PrintStatus(open, now)
	return nil
}
