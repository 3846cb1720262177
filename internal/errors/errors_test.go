package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	t.Run("without value", func(t *testing.T) {
		err := NewValidationError("activity", "must not be empty")
		assert.Equal(t, "invalid activity: must not be empty", err.Error())
	})

	t.Run("with value", func(t *testing.T) {
		err := NewValidationErrorWithValue("tag", "#bad", "no hash prefix")
		assert.Equal(t, "invalid tag '#bad': no hash prefix", err.Error())
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewValidationError("start", "required"))
		assert.True(t, IsValidationError(err))

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "start", ve.Field)
	})

	t.Run("not a validation error", func(t *testing.T) {
		assert.False(t, IsValidationError(ErrNotTracking))
		assert.False(t, IsValidationError(nil))
	})
}

func TestSystemError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewSystemErrorWithOp("save", "cannot write ledger", cause)

	assert.Equal(t, "cannot write ledger during save", err.Error())
	assert.True(t, IsSystemError(err))
	assert.ErrorIs(t, err, cause)
}

func TestCorruptLedgerError(t *testing.T) {
	err := &CorruptLedgerError{Path: "/tmp/ledger.json", Cause: errors.New("unexpected EOF")}

	assert.Contains(t, err.Error(), "/tmp/ledger.json")
	// The typed error matches the sentinel so exit-code mapping works.
	assert.ErrorIs(t, err, ErrCorruptLedger)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))

	err := Wrapf(ErrAlreadyTracking, "tracking %s", "writing")
	assert.ErrorIs(t, err, ErrAlreadyTracking)
	assert.Equal(t, "tracking writing: already tracking", err.Error())
}
