package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/model"
	"github.com/tempo-cli/tempo/internal/parser"
	"github.com/tempo-cli/tempo/internal/validate"
)

// Amend command flags.
var (
	amendFlagActivity string
	amendFlagNote     string
	amendFlagTag      string
	amendFlagStart    string
	amendFlagEnd      string
)

// amendCmd represents the amend command.
var amendCmd = &cobra.Command{
	Use:   "amend ID",
	Short: "Edit a closed entry",
	Long: `Edit the fields of a closed entry. The open entry cannot be amended;
stop or cancel it first. Only the fields whose flags are given change.

Examples:
  tempo amend 0198c5b2-... --activity review
  tempo amend 0198c5b2-... --end "17:30" --note "ran long"`,
	Args: cobra.ExactArgs(1),
	RunE: runAmend,
}

func init() {
	amendCmd.Flags().StringVar(&amendFlagActivity, "activity", "", "New activity label")
	amendCmd.Flags().StringVarP(&amendFlagNote, "note", "n", "", "New note")
	amendCmd.Flags().StringVar(&amendFlagTag, "tag", "", "New comma-separated tags")
	amendCmd.Flags().StringVar(&amendFlagStart, "start", "", "New start timestamp")
	amendCmd.Flags().StringVar(&amendFlagEnd, "end", "", "New end timestamp")
}

func runAmend(cmd *cobra.Command, args []string) error {
	id := args[0]
	now := time.Now()

	var fields ledger.AmendFields
	if cmd.Flags().Changed("activity") {
		if err := validate.Activity(amendFlagActivity); err != nil {
			return err
		}
		fields.Activity = &amendFlagActivity
	}
	if cmd.Flags().Changed("note") {
		if err := validate.Note(amendFlagNote); err != nil {
			return err
		}
		fields.Note = &amendFlagNote
	}
	if cmd.Flags().Changed("tag") {
		tags := parseTags(amendFlagTag)
		if err := validate.Tags(tags); err != nil {
			return err
		}
		fields.Tags = &tags
	}
	if cmd.Flags().Changed("start") {
		start, err := parser.ParseTimestamp(amendFlagStart, now)
		if err != nil {
			return err
		}
		fields.Start = &start
	}
	if cmd.Flags().Changed("end") {
		end, err := parser.ParseTimestamp(amendFlagEnd, now)
		if err != nil {
			return err
		}
		fields.End = &end
	}

	var amended *model.Entry
	err := ctx.WithLedger(func(l *ledger.Ledger) error {
		var err error
		amended, err = ledger.NewMachine(l).Amend(id, fields, now)
		return err
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEntry("amend", amended)
	}

	ctx.CLIFormatter().Success("Amended " + amended.Activity)
	return nil
}
