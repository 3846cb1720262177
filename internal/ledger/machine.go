package ledger

import (
	"time"

	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/model"
)

// State is the tracking state of a ledger.
type State int

const (
	// StateIdle means no open entry exists.
	StateIdle State = iota
	// StateTracking means exactly one open entry exists.
	StateTracking
)

// String returns the state name.
func (s State) String() string {
	if s == StateTracking {
		return "tracking"
	}
	return "idle"
}

// Machine applies state transitions to a ledger. All operation timestamps
// are supplied by the caller; the machine never reads the wall clock, so
// every transition is deterministic given its inputs.
type Machine struct {
	ledger *Ledger
	newID  func() string
}

// NewMachine creates a state machine over the given ledger.
func NewMachine(l *Ledger) *Machine {
	return &Machine{ledger: l, newID: model.NewID}
}

// Ledger returns the ledger the machine operates on.
func (m *Machine) Ledger() *Ledger {
	return m.ledger
}

// State returns the current tracking state.
func (m *Machine) State() State {
	if m.ledger.Open() != nil {
		return StateTracking
	}
	return StateIdle
}

// Start begins tracking a new activity at the given instant. It fails with
// ErrAlreadyTracking while an entry is open; callers wanting stop-then-start
// semantics use Switch instead.
func (m *Machine) Start(activity string, tags []string, note string, at time.Time) (*model.Entry, error) {
	if open := m.ledger.Open(); open != nil {
		return nil, errors.Wrapf(errors.ErrAlreadyTracking, "tracking %s since %s",
			open.Activity, open.Start.Format(time.RFC3339))
	}

	entry, err := model.NewEntry(m.newID(), activity, tags, note, at)
	if err != nil {
		return nil, err
	}

	m.ledger.Append(entry)
	return entry, nil
}

// Stop closes the open entry at the given instant. The instant must be
// strictly after the entry's start; a clock that went backwards is rejected,
// never clamped.
func (m *Machine) Stop(at time.Time) (*model.Entry, error) {
	open := m.ledger.Open()
	if open == nil {
		return nil, errors.ErrNotTracking
	}
	if !at.After(open.Start) {
		return nil, errors.NewValidationErrorWithValue("end", at.Format(time.RFC3339),
			"must be after start "+open.Start.Format(time.RFC3339))
	}

	end := at
	open.End = &end
	open.ModifiedAt = at
	return open, nil
}

// Switch atomically stops the open entry and starts a new one at the same
// instant. It is a single in-memory transition; the store's atomic save is
// what makes it crash-safe on disk.
func (m *Machine) Switch(activity string, tags []string, note string, at time.Time) (stopped, started *model.Entry, err error) {
	if m.ledger.Open() == nil {
		return nil, nil, errors.ErrNotTracking
	}

	stopped, err = m.Stop(at)
	if err != nil {
		return nil, nil, err
	}
	started, err = m.Start(activity, tags, note, at)
	if err != nil {
		// Reopen the stopped entry so a failed start leaves the ledger
		// exactly as it was.
		stopped.End = nil
		return nil, nil, err
	}
	return stopped, started, nil
}

// Cancel discards the open entry entirely. No tombstone is written: an open
// entry is never sync-eligible, so nothing can resurrect it.
func (m *Machine) Cancel() (*model.Entry, error) {
	open := m.ledger.Open()
	if open == nil {
		return nil, errors.ErrNotTracking
	}
	m.ledger.Remove(open.ID)
	return open, nil
}

// AmendFields holds the optional edits applied by Amend. Nil fields are
// left untouched.
type AmendFields struct {
	Activity *string
	Tags     *[]string
	Note     *string
	Start    *time.Time
	End      *time.Time
}

// Amend edits a closed entry's fields. The edit is validated against a copy
// first, so a rejected amend leaves the ledger unchanged.
func (m *Machine) Amend(id string, fields AmendFields, at time.Time) (*model.Entry, error) {
	entry := m.ledger.Find(id)
	if entry == nil {
		return nil, errors.Wrapf(errors.ErrEntryNotFound, "id %s", id)
	}
	if entry.IsOpen() {
		return nil, errors.Wrapf(errors.ErrOpenEntryImmutable, "id %s: stop or cancel first", id)
	}

	edited := entry.Clone()
	if fields.Activity != nil {
		edited.Activity = *fields.Activity
	}
	if fields.Tags != nil {
		edited.Tags = *fields.Tags
	}
	if fields.Note != nil {
		edited.Note = *fields.Note
	}
	if fields.Start != nil {
		edited.Start = *fields.Start
	}
	if fields.End != nil {
		end := *fields.End
		edited.End = &end
	}
	edited.ModifiedAt = at

	if err := edited.Validate(); err != nil {
		return nil, err
	}

	*entry = *edited
	return entry, nil
}

// Delete removes a closed entry and records a tombstone so the deletion
// propagates through sync. The open entry must be stopped or cancelled
// first.
func (m *Machine) Delete(id string, at time.Time) (*model.Entry, error) {
	entry := m.ledger.Find(id)
	if entry == nil {
		return nil, errors.Wrapf(errors.ErrEntryNotFound, "id %s", id)
	}
	if entry.IsOpen() {
		return nil, errors.Wrapf(errors.ErrOpenEntryImmutable, "id %s: use cancel for the open entry", id)
	}

	m.ledger.Remove(id)
	m.ledger.AddTombstone(id, at)
	return entry, nil
}
