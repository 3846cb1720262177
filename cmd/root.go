// Package cmd provides the CLI commands for tempo.
package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	terrors "github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/logging"
	"github.com/tempo-cli/tempo/internal/output"
	"github.com/tempo-cli/tempo/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagLedger string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "A command-line time tracking tool",
	Long: `Tempo tracks your time from the command line: start a timer against an
activity, stop or switch it, and report where your hours went. Entries live
in a single ledger file and can be synced between machines.

Examples:
  tempo start writing
  tempo switch review --at "10 minutes ago"
  tempo stop
  tempo report this week
  tempo sync`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return
		}

		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		if flagDebug {
			logging.Init(logging.DebugConfig())
		} else {
			logging.Init(logging.Config{Level: slog.LevelWarn, Output: os.Stderr})
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.LedgerPath = flagLedger

		ctx = runtime.New(opts)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show current status.
		return runStatus(cmd, args)
	},
}

// Execute runs the root command and exits with a code mapped from the
// error taxonomy, so scripts can distinguish failure modes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		Die(err)
	}
}

// exitCode maps an error to a distinct non-zero exit status.
func exitCode(err error) int {
	switch {
	case terrors.IsValidationError(err):
		return 2
	case errors.Is(err, terrors.ErrAlreadyTracking):
		return 3
	case errors.Is(err, terrors.ErrNotTracking):
		return 4
	case errors.Is(err, terrors.ErrOpenEntryImmutable):
		return 5
	case errors.Is(err, terrors.ErrEntryNotFound):
		return 6
	case errors.Is(err, terrors.ErrCorruptLedger):
		return 7
	case errors.Is(err, terrors.ErrLedgerLocked):
		return 8
	case errors.Is(err, terrors.ErrSyncFailed):
		return 9
	default:
		return 1
	}
}

// errorKind names an error category for JSON output.
func errorKind(err error) string {
	switch {
	case terrors.IsValidationError(err):
		return "validation"
	case errors.Is(err, terrors.ErrAlreadyTracking):
		return "already_tracking"
	case errors.Is(err, terrors.ErrNotTracking):
		return "not_tracking"
	case errors.Is(err, terrors.ErrOpenEntryImmutable):
		return "open_entry_immutable"
	case errors.Is(err, terrors.ErrEntryNotFound):
		return "entry_not_found"
	case errors.Is(err, terrors.ErrCorruptLedger):
		return "corrupt_ledger"
	case errors.Is(err, terrors.ErrLedgerLocked):
		return "ledger_locked"
	case errors.Is(err, terrors.ErrSyncFailed):
		return "sync_failed"
	default:
		return "error"
	}
}

// Die prints an error and exits.
func Die(err error) {
	if ctx != nil && ctx.IsJSON() {
		ctx.JSONFormatter().PrintError(errorKind(err), err.Error())
	} else {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
	}
	os.Exit(exitCode(err))
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagLedger, "ledger", "",
		"Ledger file path (default: XDG data dir)")

	// Add commands
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(amendCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("tempo %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}
