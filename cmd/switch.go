package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/model"
	"github.com/tempo-cli/tempo/internal/parser"
	"github.com/tempo-cli/tempo/internal/validate"
)

// Switch command flags.
var (
	switchFlagNote string
	switchFlagAt   string
	switchFlagTag  string
)

// switchCmd represents the switch command.
var switchCmd = &cobra.Command{
	Use:     "switch ACTIVITY",
	Aliases: []string{"sw"},
	Short:   "Stop the current entry and start a new one",
	Long: `Stop the running entry and start tracking a new activity at the same
instant, as a single step. There is no moment where the ledger has zero or
two open entries.

Examples:
  tempo switch review
  tempo switch deepwork --at "14:30" --tag focus`,
	Args: cobra.ExactArgs(1),
	RunE: runSwitch,
}

func init() {
	switchCmd.Flags().StringVarP(&switchFlagNote, "note", "n", "", "Note for the new entry")
	switchCmd.Flags().StringVar(&switchFlagAt, "at", "", "Switch timestamp (default: now)")
	switchCmd.Flags().StringVar(&switchFlagTag, "tag", "", "Comma-separated tags for the new entry")
}

func runSwitch(cmd *cobra.Command, args []string) error {
	activity := args[0]
	if err := validate.Activity(activity); err != nil {
		return err
	}
	tags := parseTags(switchFlagTag)
	if err := validate.Tags(tags); err != nil {
		return err
	}
	if err := validate.Note(switchFlagNote); err != nil {
		return err
	}

	at, err := parser.ParseTimestamp(switchFlagAt, time.Now())
	if err != nil {
		return err
	}

	var stopped, started *model.Entry
	err = ctx.WithLedger(func(l *ledger.Ledger) error {
		stopped, started, err = ledger.NewMachine(l).Switch(activity, tags, switchFlagNote, at)
		return err
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry("switch", started)
	}

	cli := ctx.CLIFormatter()
	cli.PrintStopped(stopped)
	cli.PrintStarted(started)
	return nil
}
