package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/ledger"
	"github.com/tempo-cli/tempo/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "ledger.json"))
}

func TestStoreLoadAbsent(t *testing.T) {
	s := testStore(t)

	l, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, ledger.CurrentVersion, l.Version)
	assert.Empty(t, l.Entries)
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)

	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	l := ledger.New()
	l.Append(&model.Entry{
		ID:         "a",
		Activity:   "writing",
		Tags:       []string{"deep"},
		Start:      start,
		End:        &end,
		Note:       "draft",
		ModifiedAt: end,
	})
	l.AddTombstone("b", end)

	require.NoError(t, s.Save(l))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	got := loaded.Entries[0]
	assert.Equal(t, "writing", got.Activity)
	assert.Equal(t, []string{"deep"}, got.Tags)
	assert.True(t, end.Equal(*got.End))
	require.Len(t, loaded.Tombstones, 1)
	assert.Equal(t, "b", loaded.Tombstones[0].ID)
}

func TestStorePreservesUnknownFields(t *testing.T) {
	s := testStore(t)

	doc := `{
		"version": 1,
		"entries": [
			{
				"id": "a",
				"activity": "writing",
				"start": "2026-08-24T09:00:00Z",
				"end": "2026-08-24T10:00:00Z",
				"modified_at": "2026-08-24T10:00:00Z",
				"billing_code": "ACME-42"
			}
		],
		"future_setting": true
	}`
	require.NoError(t, os.MkdirAll(s.Dir(), 0700))
	require.NoError(t, os.WriteFile(s.Path(), []byte(doc), 0600))

	l, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Save(l))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `true`, string(raw["future_setting"]))

	var entries []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["entries"], &entries))
	require.Len(t, entries, 1)
	assert.JSONEq(t, `"ACME-42"`, string(entries[0]["billing_code"]))
}

func TestStoreLoadCorrupt(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0700))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"version": 1, "entries": [truncated`), 0600))

	_, err := s.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCorruptLedger)

	var ce *errors.CorruptLedgerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, s.Path(), ce.Path)

	// The corrupt file is left in place for manual recovery.
	data, readErr := os.ReadFile(s.Path())
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "truncated")
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(ledger.New()))

	names, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	for _, de := range names {
		assert.False(t, strings.HasSuffix(de.Name(), ".tmp"), "leftover temp file %s", de.Name())
	}
}

func TestStoreSavePermissions(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(ledger.New()))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSafeWriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	require.NoError(t, SafeWrite(path, []byte("first"), 0600))
	require.NoError(t, SafeWrite(path, []byte("second"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
