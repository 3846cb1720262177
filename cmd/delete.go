package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/model"
)

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a closed entry",
	Long: `Delete a closed entry by id. A tombstone is kept so the deletion also
propagates to synced replicas instead of being resurrected by them.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	var deleted *model.Entry
	err := ctx.WithLedger(func(l *ledger.Ledger) error {
		var err error
		deleted, err = ledger.NewMachine(l).Delete(id, time.Now())
		return err
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry("delete", deleted)
	}

	ctx.CLIFormatter().Success("Deleted " + deleted.Activity)
	return nil
}
