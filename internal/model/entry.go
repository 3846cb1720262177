// Package model defines the domain models for tempo.
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tempo-cli/tempo/internal/errors"
)

// Entry represents one tracked interval of time against an activity.
// The id is immutable; every other field may be amended while the entry
// is closed. An entry with no end time is open (currently tracking).
type Entry struct {
	ID         string    `json:"id"`
	Activity   string    `json:"activity"`
	Tags       []string  `json:"tags,omitempty"`
	Start      time.Time `json:"start"`
	End        *time.Time `json:"end,omitempty"`
	Note       string    `json:"note,omitempty"`
	ModifiedAt time.Time `json:"modified_at"`

	// Extra holds fields written by other (newer or older) versions of the
	// tool. They are carried through load/save untouched so a round-trip
	// never drops data this version does not interpret.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownEntryKeys are the JSON keys this version interprets. Anything else
// found in a persisted entry lands in Extra.
var knownEntryKeys = []string{"id", "activity", "tags", "start", "end", "note", "modified_at"}

// NewID generates a new entry id. UUIDv7 keeps ids unique across the
// ledger's lifetime and roughly time-ordered.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewEntry creates a new open entry and validates its fields. This is the
// only place input data is validated before entering the ledger.
func NewEntry(id, activity string, tags []string, note string, start time.Time) (*Entry, error) {
	if activity == "" {
		return nil, errors.NewValidationError("activity", "must not be empty")
	}
	if start.IsZero() {
		return nil, errors.NewValidationError("start", "timestamp is required")
	}
	return &Entry{
		ID:         id,
		Activity:   activity,
		Tags:       normalizeTags(tags),
		Note:       note,
		Start:      start,
		ModifiedAt: start,
	}, nil
}

// Validate checks the entry invariants: non-empty activity, a usable start
// timestamp, and end (when present) strictly after start.
func (e *Entry) Validate() error {
	if e.Activity == "" {
		return errors.NewValidationErrorWithValue("activity", e.ID, "must not be empty")
	}
	if e.Start.IsZero() {
		return errors.NewValidationErrorWithValue("start", e.ID, "timestamp is required")
	}
	if e.End != nil && !e.End.After(e.Start) {
		return errors.NewValidationErrorWithValue("end", e.ID, "must be after start")
	}
	return nil
}

// IsOpen returns true if the entry has no end time (currently tracking).
func (e *Entry) IsOpen() bool {
	return e.End == nil
}

// Duration returns the duration of the entry. Open entries are measured
// against the supplied now so callers stay in control of the clock.
func (e *Entry) Duration(now time.Time) time.Duration {
	if e.IsOpen() {
		return now.Sub(e.Start)
	}
	return e.End.Sub(e.Start)
}

// HasTag reports whether the entry carries the given tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	clone := *e
	if e.Tags != nil {
		clone.Tags = append([]string(nil), e.Tags...)
	}
	if e.End != nil {
		end := *e.End
		clone.End = &end
	}
	if e.Extra != nil {
		clone.Extra = make(map[string]json.RawMessage, len(e.Extra))
		for k, v := range e.Extra {
			clone.Extra[k] = v
		}
	}
	return &clone
}

// normalizeTags deduplicates tags while keeping first-seen order. Tag order
// is irrelevant to equality but stable output makes diffs readable.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// entryAlias avoids marshal recursion.
type entryAlias Entry

// MarshalJSON writes the known fields and merges back any unknown fields
// captured at load time.
func (e Entry) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(entryAlias(e))
	if err != nil {
		return nil, err
	}
	if len(e.Extra) == 0 {
		return known, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range e.Extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the known fields and stashes everything else in
// Extra, byte-for-byte.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var alias entryAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownEntryKeys {
		delete(raw, k)
	}

	*e = Entry(alias)
	if len(raw) > 0 {
		e.Extra = raw
	}
	return nil
}

// Tombstone records that an entry id was deleted. It is kept so a merge
// with an out-of-date replica cannot resurrect the entry.
type Tombstone struct {
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deleted_at"`
}
