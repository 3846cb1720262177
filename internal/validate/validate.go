// Package validate provides input validation helpers for the tempo CLI.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tempo-cli/tempo/internal/errors"
)

const (
	// MaxActivityLength is the maximum length for an activity label.
	MaxActivityLength = 128
	// MaxTagLength is the maximum length for a single tag.
	MaxTagLength = 64
	// MaxNoteLength is the maximum length for a note.
	MaxNoteLength = 4096
)

// tagRegex validates tags (alphanumeric, dashes, underscores, periods).
var tagRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Activity validates an activity label.
func Activity(activity string) error {
	if strings.TrimSpace(activity) == "" {
		return errors.NewValidationError("activity", "must not be empty")
	}
	if utf8.RuneCountInString(activity) > MaxActivityLength {
		return errors.NewValidationErrorWithValue("activity", activity,
			"must be 128 characters or fewer")
	}
	return nil
}

// Tag validates a single tag.
func Tag(tag string) error {
	if tag == "" {
		return errors.NewValidationError("tag", "must not be empty")
	}
	if len(tag) > MaxTagLength {
		return errors.NewValidationErrorWithValue("tag", tag,
			"must be 64 characters or fewer")
	}
	if !tagRegex.MatchString(tag) {
		return errors.NewValidationErrorWithValue("tag", tag,
			"must start with a letter or number and contain only letters, numbers, dashes, underscores, or periods")
	}
	return nil
}

// Tags validates a list of tags.
func Tags(tags []string) error {
	for _, t := range tags {
		if err := Tag(t); err != nil {
			return err
		}
	}
	return nil
}

// Note validates a note.
func Note(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return errors.NewValidationError("note", "must be 4096 characters or fewer")
	}
	return nil
}
