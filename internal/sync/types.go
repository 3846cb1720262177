// Package sync implements the ledger sync protocol: pulling remote
// changes, merging them deterministically, and pushing local changes.
//
// The transport is a small JSON-over-HTTP API: GET /entries?since=T returns
// a batch of entries and tombstones modified since T; POST /entries pushes
// local changes and returns per-entry acknowledgments.
package sync

import (
	"github.com/tempo-cli/tempo/internal/model"
)

// Batch is the wire shape exchanged with the sync server: a set of entries
// plus the tombstones needed to propagate deletions.
type Batch struct {
	Entries    []*model.Entry    `json:"entries"`
	Tombstones []model.Tombstone `json:"tombstones,omitempty"`
}

// AckStatus is the server's verdict on one pushed entry.
type AckStatus string

const (
	// AckOK means the server accepted the entry.
	AckOK AckStatus = "ok"
	// AckConflict means the server holds a newer version; the entry will
	// arrive on the next pull.
	AckConflict AckStatus = "conflict"
)

// Ack is a per-entry acknowledgment returned by a push.
type Ack struct {
	ID     string    `json:"id"`
	Status AckStatus `json:"status"`
}
