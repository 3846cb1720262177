// Package storage provides durable persistence for the tempo ledger.
//
// The ledger is one self-describing JSON document per user. Load reads the
// whole document; Save replaces it atomically, so a crash mid-write never
// leaves a truncated ledger visible to the next load.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/logging"
)

const (
	// AppName is the application name used for data directories.
	AppName = "tempo"
	// LedgerFileName is the name of the ledger document.
	LedgerFileName = "ledger.json"
)

// Store reads and writes the ledger document at a fixed path.
type Store struct {
	path string
}

// DefaultPath returns the default ledger path following the XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, LedgerFileName)
}

// NewStore creates a store for the ledger document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the directory holding the ledger file. The advisory lock
// lives there too.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// Load reads the persisted ledger. A missing file yields an empty ledger;
// a file that exists but cannot be decoded fails with a CorruptLedgerError
// rather than silently discarding data.
func (s *Store) Load() (*ledger.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("ledger file absent, starting empty", logging.KeyPath, s.path)
			return ledger.New(), nil
		}
		return nil, errors.NewSystemErrorWithOp("load", "cannot read ledger file", err)
	}

	var l ledger.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, &errors.CorruptLedgerError{Path: s.path, Cause: err}
	}

	logging.Debug("ledger loaded",
		logging.KeyPath, s.path,
		logging.KeyCount, len(l.Entries))
	return &l, nil
}

// Save serializes the full ledger and replaces the backing file
// atomically (write to a temporary file, fsync, rename).
func (s *Store) Save(l *ledger.Ledger) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return errors.NewSystemErrorWithOp("save", "cannot encode ledger", err)
	}
	data = append(data, '\n')

	if err := EnsureDirectory(s.Dir()); err != nil {
		return err
	}
	if err := SafeWrite(s.path, data, 0600); err != nil {
		return err
	}

	logging.Debug("ledger saved",
		logging.KeyPath, s.path,
		logging.KeyCount, len(l.Entries))
	return nil
}
