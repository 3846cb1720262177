package sync

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/model"
)

var t0 = time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

func closedAt(id, activity string, start time.Time, d time.Duration, modified time.Time) *model.Entry {
	end := start.Add(d)
	return &model.Entry{
		ID:         id,
		Activity:   activity,
		Start:      start,
		End:        &end,
		ModifiedAt: modified,
	}
}

func ledgerWith(entries ...*model.Entry) *ledger.Ledger {
	l := ledger.New()
	for _, e := range entries {
		l.Append(e)
	}
	return l
}

func canonicalJSON(t *testing.T, l *ledger.Ledger) string {
	t.Helper()
	b, err := json.Marshal(l)
	require.NoError(t, err)
	return string(b)
}

func TestMergeAddsNewRemoteEntries(t *testing.T) {
	local := ledgerWith(closedAt("a", "writing", t0, time.Hour, t0.Add(time.Hour)))
	remote := Batch{Entries: []*model.Entry{
		closedAt("b", "review", t0.Add(2*time.Hour), time.Hour, t0.Add(3*time.Hour)),
	}}

	res := Merge(local, remote)

	assert.Equal(t, 1, res.Added)
	assert.Len(t, local.Entries, 2)
	// The remote side has never seen "a".
	require.Len(t, res.ToPush, 1)
	assert.Equal(t, "a", res.ToPush[0].ID)
}

func TestMergeSkipsOpenRemoteEntries(t *testing.T) {
	local := ledger.New()
	open := &model.Entry{ID: "a", Activity: "writing", Start: t0, ModifiedAt: t0}
	remote := Batch{Entries: []*model.Entry{open}}

	res := Merge(local, remote)

	assert.Zero(t, res.Added)
	assert.Empty(t, local.Entries)
}

func TestMergeOpenLocalEntryNeverPushed(t *testing.T) {
	local := ledger.New()
	local.Append(&model.Entry{ID: "a", Activity: "writing", Start: t0, ModifiedAt: t0})

	res := Merge(local, Batch{})

	assert.Empty(t, res.ToPush)
}

func TestMergeLastWriterWins(t *testing.T) {
	t.Run("remote newer", func(t *testing.T) {
		local := ledgerWith(closedAt("a", "writing", t0, time.Hour, t0.Add(time.Hour)))
		remote := Batch{Entries: []*model.Entry{
			closedAt("a", "writing-amended", t0, time.Hour, t0.Add(2*time.Hour)),
		}}

		res := Merge(local, remote)

		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, "writing-amended", local.Find("a").Activity)
		assert.Empty(t, res.ToPush)
	})

	t.Run("local newer", func(t *testing.T) {
		local := ledgerWith(closedAt("a", "writing-amended", t0, time.Hour, t0.Add(2*time.Hour)))
		remote := Batch{Entries: []*model.Entry{
			closedAt("a", "writing", t0, time.Hour, t0.Add(time.Hour)),
		}}

		res := Merge(local, remote)

		assert.Zero(t, res.Updated)
		assert.Equal(t, "writing-amended", local.Find("a").Activity)
		// The server needs the local winner.
		require.Len(t, res.ToPush, 1)
		assert.Equal(t, "a", res.ToPush[0].ID)
	})

	t.Run("identical versions push nothing", func(t *testing.T) {
		e := closedAt("a", "writing", t0, time.Hour, t0.Add(time.Hour))
		local := ledgerWith(e.Clone())
		remote := Batch{Entries: []*model.Entry{e}}

		res := Merge(local, remote)

		assert.Zero(t, res.Updated)
		assert.Empty(t, res.ToPush)
	})
}

func TestMergeTieBreakIsDeterministic(t *testing.T) {
	// Same modified_at, different content: both replicas must pick the
	// same winner regardless of which side is "local".
	va := closedAt("a", "alpha", t0, time.Hour, t0.Add(time.Hour))
	vb := closedAt("a", "beta", t0, time.Hour, t0.Add(time.Hour))

	l1 := ledgerWith(va.Clone())
	Merge(l1, Batch{Entries: []*model.Entry{vb.Clone()}})

	l2 := ledgerWith(vb.Clone())
	Merge(l2, Batch{Entries: []*model.Entry{va.Clone()}})

	assert.Equal(t, l1.Find("a").Activity, l2.Find("a").Activity)
}

func TestMergeTombstoneDominates(t *testing.T) {
	t.Run("remote tombstone removes local entry", func(t *testing.T) {
		local := ledgerWith(closedAt("a", "writing", t0, time.Hour, t0.Add(10*time.Hour)))
		remote := Batch{Tombstones: []model.Tombstone{{ID: "a", DeletedAt: t0.Add(time.Hour)}}}

		res := Merge(local, remote)

		assert.Equal(t, 1, res.Removed)
		assert.Nil(t, local.Find("a"))
		assert.True(t, local.HasTombstone("a"))
		// A tombstoned entry is never re-uploaded.
		assert.Empty(t, res.ToPush)
	})

	t.Run("tombstone wins over newer entry version", func(t *testing.T) {
		local := ledger.New()
		local.AddTombstone("a", t0)
		remote := Batch{Entries: []*model.Entry{
			// Modified after the deletion, still dead.
			closedAt("a", "writing", t0, time.Hour, t0.Add(5*time.Hour)),
		}}

		res := Merge(local, remote)

		assert.Zero(t, res.Added)
		assert.Nil(t, local.Find("a"))
	})

	t.Run("duplicate tombstones keep earliest deleted_at", func(t *testing.T) {
		local := ledger.New()
		local.AddTombstone("a", t0.Add(2*time.Hour))
		remote := Batch{Tombstones: []model.Tombstone{{ID: "a", DeletedAt: t0.Add(time.Hour)}}}

		Merge(local, remote)

		require.Len(t, local.Tombstones, 1)
		assert.Equal(t, t0.Add(time.Hour), local.Tombstones[0].DeletedAt)
	})
}

func TestMergeIdempotent(t *testing.T) {
	remote := Batch{
		Entries: []*model.Entry{
			closedAt("b", "review", t0, time.Hour, t0.Add(time.Hour)),
		},
		Tombstones: []model.Tombstone{{ID: "c", DeletedAt: t0}},
	}

	local := ledgerWith(closedAt("a", "writing", t0, 30*time.Minute, t0.Add(30*time.Minute)))
	Merge(local, remote)
	once := canonicalJSON(t, local)

	Merge(local, remote)
	twice := canonicalJSON(t, local)

	assert.Equal(t, once, twice)
}

func TestMergeCommutative(t *testing.T) {
	// Two replicas that tracked independently and then exchange batches
	// must converge to the same ledger.
	e1 := closedAt("a", "writing", t0, time.Hour, t0.Add(time.Hour))
	e2 := closedAt("b", "review", t0.Add(2*time.Hour), time.Hour, t0.Add(3*time.Hour))
	shared1 := closedAt("s", "shared", t0, time.Hour, t0.Add(4*time.Hour))
	shared2 := closedAt("s", "shared-amended", t0, time.Hour, t0.Add(5*time.Hour))

	replicaA := ledgerWith(e1.Clone(), shared1.Clone())
	replicaB := ledgerWith(e2.Clone(), shared2.Clone())

	batchFromB := Batch{Entries: []*model.Entry{e2.Clone(), shared2.Clone()}}
	batchFromA := Batch{Entries: []*model.Entry{e1.Clone(), shared1.Clone()}}

	Merge(replicaA, batchFromB)
	Merge(replicaB, batchFromA)

	assert.Equal(t, canonicalJSON(t, replicaA), canonicalJSON(t, replicaB))
	assert.Equal(t, "shared-amended", replicaA.Find("s").Activity)
}

func TestMergeSameActivityDistinctEntries(t *testing.T) {
	// Two machines both tracked "writing" at overlapping times. The entries
	// have different ids, so both survive; nothing is deduplicated.
	local := ledgerWith(closedAt("a", "writing", t0, time.Hour, t0.Add(time.Hour)))
	remote := Batch{Entries: []*model.Entry{
		closedAt("b", "writing", t0.Add(30*time.Minute), time.Hour, t0.Add(2*time.Hour)),
	}}

	res := Merge(local, remote)

	assert.Equal(t, 1, res.Added)
	assert.Len(t, local.Entries, 2)
}

func TestMergeCanonicalOrder(t *testing.T) {
	local := ledgerWith(
		closedAt("c", "one", t0, time.Hour, t0.Add(time.Hour)),
		closedAt("a", "two", t0, time.Hour, t0.Add(time.Hour)),
	)
	remote := Batch{Entries: []*model.Entry{
		closedAt("b", "three", t0, time.Hour, t0.Add(time.Hour)),
	}}

	Merge(local, remote)

	require.Len(t, local.Entries, 3)
	assert.Equal(t, "a", local.Entries[0].ID)
	assert.Equal(t, "b", local.Entries[1].ID)
	assert.Equal(t, "c", local.Entries[2].ID)
}
