package internal

import (
	"errors"
	"strings"
)

// StageError represents a fault raised by a single pipeline stage.
// Message is the user-facing fault description; Err is an optional
// nested cause preserved for recovery formatting and errors.Is/As.
type StageError struct {
	// Err is the nested cause, if any.
	Err error

	// Message is the fault description.
	Message string
}

// NewStageError creates a StageError with the given message.
func NewStageError(message string) *StageError {
	return &StageError{Message: message}
}

// WrapStageError creates a StageError with a message and a nested cause.
func WrapStageError(message string, cause error) *StageError {
	return &StageError{Message: message, Err: cause}
}

func (e *StageError) Error() string {
	return e.Message
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// CompositeError aggregates faults from fanned-out suborchestration.
// Errs preserves submission order; the first entry is the primary cause
// a recovery boundary reports.
type CompositeError struct {
	Errs []error
}

func (e *CompositeError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes all aggregated errors to errors.Is and errors.As.
func (e *CompositeError) Unwrap() []error {
	return e.Errs
}

// First returns the primary underlying fault, or nil if the aggregate is empty.
func (e *CompositeError) First() error {
	if len(e.Errs) == 0 {
		return nil
	}
	return e.Errs[0]
}

// Helper functions for fault inspection.

// IsStageError returns true if the error is or wraps a StageError.
func IsStageError(err error) bool {
	var se *StageError
	return errors.As(err, &se)
}

// AsStageError extracts the StageError from an error if present.
func AsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsCompositeError returns true if the error is or wraps a CompositeError.
func IsCompositeError(err error) bool {
	var ce *CompositeError
	return errors.As(err, &ce)
}

// AsCompositeError extracts the CompositeError from an error if present.
func AsCompositeError(err error) (*CompositeError, bool) {
	var ce *CompositeError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
