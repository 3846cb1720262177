package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivity(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		wantErr  bool
	}{
		{name: "simple", activity: "writing"},
		{name: "with spaces", activity: "client meeting"},
		{name: "unicode", activity: "écriture"},
		{name: "empty", activity: "", wantErr: true},
		{name: "whitespace only", activity: "   ", wantErr: true},
		{name: "at limit", activity: strings.Repeat("a", MaxActivityLength)},
		{name: "over limit", activity: strings.Repeat("a", MaxActivityLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Activity(tt.activity)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{name: "simple", tag: "billable"},
		{name: "with dash", tag: "client-a"},
		{name: "with dots", tag: "v1.2"},
		{name: "numeric start", tag: "2026-planning"},
		{name: "empty", tag: "", wantErr: true},
		{name: "leading dash", tag: "-bad", wantErr: true},
		{name: "spaces", tag: "two words", wantErr: true},
		{name: "hash prefix", tag: "#tag", wantErr: true},
		{name: "over limit", tag: strings.Repeat("a", MaxTagLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Tag(tt.tag)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTags(t *testing.T) {
	assert.NoError(t, Tags(nil))
	assert.NoError(t, Tags([]string{"a", "b"}))
	assert.Error(t, Tags([]string{"a", ""}))
}

func TestNote(t *testing.T) {
	assert.NoError(t, Note(""))
	assert.NoError(t, Note(strings.Repeat("x", MaxNoteLength)))
	assert.Error(t, Note(strings.Repeat("x", MaxNoteLength+1)))
}
