package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/model"
)

// cancelCmd represents the cancel command.
var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the current open entry",
	Long: `Discard the running entry as if it was never started. Unlike delete,
cancel leaves no trace: an open entry has never been synced, so nothing
needs to remember it.`,
	Args: cobra.NoArgs,
	RunE: runCancel,
}

func runCancel(cmd *cobra.Command, args []string) error {
	var discarded *model.Entry
	err := ctx.WithLedger(func(l *ledger.Ledger) error {
		var err error
		discarded, err = ledger.NewMachine(l).Cancel()
		return err
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry("cancel", discarded)
	}

	ctx.CLIFormatter().Muted("Discarded " + discarded.Activity)
	return nil
}
