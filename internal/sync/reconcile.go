package sync

import (
	"encoding/json"
	"sort"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/logging"
	"github.com/tempo-cli/tempo/internal/model"
)

// Result summarizes what a merge changed and which local entries still
// need to be uploaded.
type Result struct {
	Added   int
	Updated int
	Removed int

	// ToPush are local closed entries the remote side does not have yet,
	// plus conflict winners that originated locally.
	ToPush []*model.Entry
}

// Merge merges a remote batch into the local ledger. The merge is
// commutative and idempotent: applying the same batch twice, or merging
// two replicas in either order, yields the same ledger.
//
// Rules, in order of precedence:
//   - a tombstone for an id always wins over any entry version of that id,
//     regardless of timestamps;
//   - open entries are local-only and never cross replicas;
//   - conflicting closed versions of one id resolve last-writer-wins on
//     modified_at, with a deterministic tie-break (see pickWinner).
func Merge(local *ledger.Ledger, remote Batch) *Result {
	res := &Result{}

	// Union of tombstones first: deletions dominate everything below.
	// When both sides hold a tombstone for the same id the earliest
	// deleted_at is kept, so the union is order-independent.
	for _, t := range remote.Tombstones {
		merged := false
		for i := range local.Tombstones {
			if local.Tombstones[i].ID == t.ID {
				if t.DeletedAt.Before(local.Tombstones[i].DeletedAt) {
					local.Tombstones[i].DeletedAt = t.DeletedAt
				}
				merged = true
				break
			}
		}
		if !merged {
			local.AddTombstone(t.ID, t.DeletedAt)
		}
	}
	for _, t := range local.Tombstones {
		if removed := local.Remove(t.ID); removed {
			res.Removed++
		}
	}

	remoteByID := make(map[string]*model.Entry, len(remote.Entries))
	for _, re := range remote.Entries {
		if re.IsOpen() {
			// An in-progress timer is local to whichever replica owns it.
			continue
		}
		if local.HasTombstone(re.ID) {
			continue
		}
		remoteByID[re.ID] = re

		existing := local.Find(re.ID)
		if existing == nil {
			local.Append(re.Clone())
			res.Added++
			continue
		}
		if winner := pickWinner(existing, re); winner == re {
			*existing = *re.Clone()
			res.Updated++
		} else if !sameVersion(existing, re) {
			// Local version won the conflict; the server needs it.
			res.ToPush = append(res.ToPush, existing)
		}
	}

	// Closed entries the remote side has never seen are upload candidates.
	for _, e := range local.Closed() {
		if _, known := remoteByID[e.ID]; !known {
			res.ToPush = append(res.ToPush, e)
		}
	}

	canonicalize(local)
	sort.Slice(res.ToPush, func(i, j int) bool { return res.ToPush[i].ID < res.ToPush[j].ID })

	logging.Debug("merge complete",
		"added", res.Added,
		"updated", res.Updated,
		"removed", res.Removed,
		"to_push", len(res.ToPush))
	return res
}

// pickWinner resolves a conflict between two versions of the same entry.
// Later modified_at wins. On an exact timestamp tie the comparison falls
// back to the canonical JSON encoding, which is stable across replicas, so
// both sides of a merge pick the same winner.
func pickWinner(local, remote *model.Entry) *model.Entry {
	if remote.ModifiedAt.After(local.ModifiedAt) {
		return remote
	}
	if local.ModifiedAt.After(remote.ModifiedAt) {
		return local
	}

	lb, lerr := json.Marshal(local)
	rb, rerr := json.Marshal(remote)
	if lerr != nil || rerr != nil {
		return local
	}
	if string(rb) > string(lb) {
		return remote
	}
	return local
}

// sameVersion reports whether two entry versions are identical in content.
func sameVersion(a, b *model.Entry) bool {
	ab, aerr := json.Marshal(a)
	bb, berr := json.Marshal(b)
	if aerr != nil || berr != nil {
		return false
	}
	return string(ab) == string(bb)
}

// canonicalize sorts entries and tombstones by id so merged replicas are
// byte-identical regardless of merge order.
func canonicalize(l *ledger.Ledger) {
	sort.Slice(l.Entries, func(i, j int) bool { return l.Entries[i].ID < l.Entries[j].ID })
	sort.Slice(l.Tombstones, func(i, j int) bool { return l.Tombstones[i].ID < l.Tombstones[j].ID })
}
