package fitness

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input. It is returned to
// the caller immediately and is never worth retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps any database error at the store boundary, so callers
// never see a raw driver error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage [%s]: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ReconciliationError marks a single goal's progress update failure. Failures
// are isolated per goal and never abort the rest of a reconciliation batch.
type ReconciliationError struct {
	GoalID int
	Err    error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconcile goal %d: %s", e.GoalID, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}
