package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/logging"
	"github.com/tempo-cli/tempo/internal/sync"
)

// syncCmd represents the sync command.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the ledger with the sync server",
	Long: `Pull remote changes, merge them into the local ledger and push back
anything the server is missing. The merge is idempotent, so running sync
twice in a row is harmless.

The open entry never leaves this machine; it only syncs once stopped.

Requires TEMPO_SYNC_URL (and usually TEMPO_SYNC_API_KEY) to be set.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	if ctx.Config.Sync.BaseURL == "" {
		return errors.NewValidationError("sync_url",
			"no sync server configured; set TEMPO_SYNC_URL")
	}

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := sync.NewClient(ctx.Config.Sync)

	var (
		res       *sync.Result
		pushed    int
		conflicts int
	)
	err := ctx.WithLedger(func(l *ledger.Ledger) error {
		// The cursor advances to the pull instant, not to "after the push":
		// anything a peer writes while we merge is picked up next time.
		syncStart := time.Now()

		batch, err := client.PullSince(sigCtx, l.SyncedAt)
		if err != nil {
			return err
		}

		res = sync.Merge(l, *batch)

		if len(res.ToPush) > 0 || len(l.Tombstones) > 0 {
			acks, err := client.Push(sigCtx, sync.Batch{
				Entries:    res.ToPush,
				Tombstones: l.Tombstones,
			})
			if err != nil {
				return err
			}
			for _, ack := range acks {
				switch ack.Status {
				case sync.AckOK:
					pushed++
				case sync.AckConflict:
					// The server has a newer version; the next pull merges it.
					conflicts++
					logging.Debug("push conflict", logging.KeyEntryID, ack.ID)
				}
			}
		}

		l.SyncedAt = syncStart
		return nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSync(res.Added, res.Updated, res.Removed, pushed, conflicts)
	}

	cli := ctx.CLIFormatter()
	cli.PrintSync(res.Added, res.Updated, res.Removed, pushed)
	if conflicts > 0 {
		cli.Warning("Some entries were superseded remotely; run sync again to pull them")
	}
	return nil
}
