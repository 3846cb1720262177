// Package ledger holds the time-entry ledger and its state machine.
//
// A ledger is loaded fully into memory for each CLI invocation, mutated
// through the Machine's transitions, then persisted back atomically. The
// single-open-entry rule is a ledger-level invariant enforced by the
// Machine, not by Entry itself, so bulk operations such as reconciliation
// are not forced through the single-open check.
package ledger

import (
	"encoding/json"
	"time"

	"github.com/tempo-cli/tempo/internal/model"
)

// CurrentVersion is the schema version written to new ledger files.
const CurrentVersion = 1

// Ledger is the full collection of entries and tombstones for a user.
type Ledger struct {
	Version    int               `json:"version"`
	SyncedAt   time.Time         `json:"synced_at,omitzero"`
	Entries    []*model.Entry    `json:"entries"`
	Tombstones []model.Tombstone `json:"tombstones,omitempty"`

	// Extra carries unknown top-level fields through a load/save cycle.
	Extra map[string]json.RawMessage `json:"-"`
}

var knownLedgerKeys = []string{"version", "synced_at", "entries", "tombstones"}

// New creates an empty ledger at the current schema version.
func New() *Ledger {
	return &Ledger{Version: CurrentVersion, Entries: []*model.Entry{}}
}

// Open returns the currently open entry, or nil when idle.
func (l *Ledger) Open() *model.Entry {
	for _, e := range l.Entries {
		if e.IsOpen() {
			return e
		}
	}
	return nil
}

// Find returns the entry with the given id, or nil.
func (l *Ledger) Find(id string) *model.Entry {
	for _, e := range l.Entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Append adds an entry to the ledger.
func (l *Ledger) Append(e *model.Entry) {
	l.Entries = append(l.Entries, e)
}

// Remove deletes the entry with the given id without leaving a tombstone.
// Returns false if the id is not present.
func (l *Ledger) Remove(id string) bool {
	for i, e := range l.Entries {
		if e.ID == id {
			l.Entries = append(l.Entries[:i], l.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// HasTombstone reports whether the id was deleted at some point.
func (l *Ledger) HasTombstone(id string) bool {
	for _, t := range l.Tombstones {
		if t.ID == id {
			return true
		}
	}
	return false
}

// AddTombstone records a deletion marker for the id. Adding the same id
// twice is a no-op so merges stay idempotent.
func (l *Ledger) AddTombstone(id string, deletedAt time.Time) {
	if l.HasTombstone(id) {
		return
	}
	l.Tombstones = append(l.Tombstones, model.Tombstone{ID: id, DeletedAt: deletedAt})
}

// Closed returns all closed entries.
func (l *Ledger) Closed() []*model.Entry {
	out := make([]*model.Entry, 0, len(l.Entries))
	for _, e := range l.Entries {
		if !e.IsOpen() {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	clone := &Ledger{
		Version:  l.Version,
		SyncedAt: l.SyncedAt,
		Entries:  make([]*model.Entry, 0, len(l.Entries)),
	}
	for _, e := range l.Entries {
		clone.Entries = append(clone.Entries, e.Clone())
	}
	if l.Tombstones != nil {
		clone.Tombstones = append([]model.Tombstone(nil), l.Tombstones...)
	}
	if l.Extra != nil {
		clone.Extra = make(map[string]json.RawMessage, len(l.Extra))
		for k, v := range l.Extra {
			clone.Extra[k] = v
		}
	}
	return clone
}

type ledgerAlias Ledger

// MarshalJSON writes the known document fields and merges back any unknown
// top-level fields captured at load time.
func (l Ledger) MarshalJSON() ([]byte, error) {
	if l.Entries == nil {
		l.Entries = []*model.Entry{}
	}
	known, err := json.Marshal(ledgerAlias(l))
	if err != nil {
		return nil, err
	}
	if len(l.Extra) == 0 {
		return known, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range l.Extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the known document fields and stashes unknown
// top-level fields in Extra.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var alias ledgerAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownLedgerKeys {
		delete(raw, k)
	}

	*l = Ledger(alias)
	if l.Entries == nil {
		l.Entries = []*model.Entry{}
	}
	if len(raw) > 0 {
		l.Extra = raw
	}
	return nil
}
