// Package runtime provides the application runtime context for tempo.
package runtime

import (
	"github.com/tempo-cli/tempo/internal/config"
	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/output"
	"github.com/tempo-cli/tempo/internal/storage"
)

// Context holds the application runtime context shared by all commands.
type Context struct {
	Config    *config.RuntimeConfig
	Store     *storage.Store
	Formatter *output.Formatter

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	LedgerPath string
	Format     output.Format
	ColorMode  output.ColorMode
	Debug      bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context.
func New(opts Options) *Context {
	cfg := config.Load()

	path := opts.LedgerPath
	if path == "" {
		path = cfg.Storage.Path
	}
	if path == "" {
		path = storage.DefaultPath()
	}

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		Config:    cfg,
		Store:     storage.NewStore(path),
		Formatter: formatter,
		Debug:     opts.Debug,
	}
}

// WithLedger runs one load-mutate-save cycle under the ledger lock. The
// ledger is saved only if fn succeeds, so a failed operation leaves the
// persisted state untouched.
func (c *Context) WithLedger(fn func(l *ledger.Ledger) error) error {
	lock := storage.NewFileLock(c.Store.Dir())
	if err := storage.EnsureDirectory(c.Store.Dir()); err != nil {
		return err
	}
	if err := lock.Acquire(c.Config.Storage.LockWait); err != nil {
		return err
	}
	defer lock.Release()

	l, err := c.Store.Load()
	if err != nil {
		return err
	}

	if err := fn(l); err != nil {
		return err
	}

	return c.Store.Save(l)
}

// ViewLedger runs a read-only function against the current ledger, still
// under the lock so a concurrent writer cannot race the read.
func (c *Context) ViewLedger(fn func(l *ledger.Ledger) error) error {
	lock := storage.NewFileLock(c.Store.Dir())
	if err := storage.EnsureDirectory(c.Store.Dir()); err != nil {
		return err
	}
	if err := lock.Acquire(c.Config.Storage.LockWait); err != nil {
		return err
	}
	defer lock.Release()

	l, err := c.Store.Load()
	if err != nil {
		return err
	}

	return fn(l)
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}
