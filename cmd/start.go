package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/model"
	"github.com/tempo-cli/tempo/internal/parser"
	"github.com/tempo-cli/tempo/internal/validate"
)

// Start command flags.
var (
	startFlagNote   string
	startFlagAt     string
	startFlagTag    string
	startFlagSwitch bool
)

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:     "start ACTIVITY",
	Aliases: []string{"s", "on"},
	Short:   "Start tracking time on an activity",
	Long: `Start tracking time on an activity.

Starting while a timer is already running is an error unless --switch is
given, in which case the running entry is stopped and a new one begins in
one step.

Examples:
  tempo start writing
  tempo start review --tag billable,client --note "PR 4821"
  tempo start standup --at "5 minutes ago"`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startFlagNote, "note", "n", "", "Note for the entry")
	startCmd.Flags().StringVar(&startFlagAt, "at", "", "Start timestamp (default: now)")
	startCmd.Flags().StringVar(&startFlagTag, "tag", "", "Comma-separated tags (e.g., billable,urgent)")
	startCmd.Flags().BoolVar(&startFlagSwitch, "switch", false, "Stop the running entry first")
}

// parseTags splits and trims a comma-separated tag flag.
func parseTags(flag string) []string {
	if flag == "" {
		return nil
	}
	tags := strings.Split(flag, ",")
	for i, tag := range tags {
		tags[i] = strings.TrimSpace(tag)
	}
	return tags
}

func runStart(cmd *cobra.Command, args []string) error {
	activity := args[0]
	if err := validate.Activity(activity); err != nil {
		return err
	}
	tags := parseTags(startFlagTag)
	if err := validate.Tags(tags); err != nil {
		return err
	}
	if err := validate.Note(startFlagNote); err != nil {
		return err
	}

	at, err := parser.ParseTimestamp(startFlagAt, time.Now())
	if err != nil {
		return err
	}

	var started, stopped *model.Entry
	err = ctx.WithLedger(func(l *ledger.Ledger) error {
		machine := ledger.NewMachine(l)
		if startFlagSwitch && machine.State() == ledger.StateTracking {
			stopped, started, err = machine.Switch(activity, tags, startFlagNote, at)
			return err
		}
		started, err = machine.Start(activity, tags, startFlagNote, at)
		return err
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry("start", started)
	}

	cli := ctx.CLIFormatter()
	if stopped != nil {
		cli.Muted("Stopped " + stopped.Activity)
	}
	cli.PrintStarted(started)
	return nil
}
