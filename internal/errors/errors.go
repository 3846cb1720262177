// Package errors provides consistent error types for the tempo CLI.
// It defines the error taxonomy surfaced to users: validation failures,
// state-machine precondition violations, storage faults and sync faults.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrAlreadyTracking    = errors.New("already tracking")
	ErrNotTracking        = errors.New("no active tracking")
	ErrOpenEntryImmutable = errors.New("open entry cannot be amended")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrCorruptLedger      = errors.New("ledger file corrupted")
	ErrLedgerLocked       = errors.New("ledger locked by another process")
	ErrInvalidRange       = errors.New("invalid time range")
	ErrActivityRequired   = errors.New("activity is required")
	ErrEndBeforeStart     = errors.New("end time must be after start time")
	ErrDiskFull           = errors.New("disk full")
	ErrSyncFailed         = errors.New("sync failed")
)

// ValidationError represents malformed input the user must correct and retry.
// It carries the field and value that failed so the message is actionable.
type ValidationError struct {
	Field  string // The field that failed validation
	Value  string // The offending value (optional)
	Reason string // Why it was rejected
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NewValidationErrorWithValue creates a new ValidationError with the offending value.
func NewValidationErrorWithValue(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// SystemError represents a system-level error that the user cannot directly fix.
// Examples: disk full, unreadable ledger file, network failure.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	return e.Message
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{Message: message, Cause: cause}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{Message: message, Cause: cause, Op: op}
}

// CorruptLedgerError is returned when the persisted ledger cannot be decoded.
// It is fatal: the file is surfaced verbatim, never auto-repaired or truncated.
type CorruptLedgerError struct {
	Path  string
	Cause error
}

func (e *CorruptLedgerError) Error() string {
	return fmt.Sprintf("ledger file %s is corrupted: %v", e.Path, e.Cause)
}

func (e *CorruptLedgerError) Unwrap() error { return ErrCorruptLedger }

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
