package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every ValidationError.
	ErrValidation = errors.New("invalid request")
	// ErrSelectionExhausted matches every SelectionExhaustedError.
	ErrSelectionExhausted = errors.New("no eligible mutator")
	// ErrCancelled is returned when the caller aborts a generation.
	ErrCancelled = errors.New("generation cancelled")
	// ErrInvalidCatalog is returned when discovered descriptors are malformed.
	ErrInvalidCatalog = errors.New("invalid mutator catalog")
	// ErrTestMismatch is returned when a tested payload does not behave like
	// the original command.
	ErrTestMismatch = errors.New("payload behavior differs from the original")
)

// ValidationError reports a malformed request field. It is raised before any
// generation work starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) work.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError with a formatted reason.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// SelectionExhaustedError reports that a required category has no candidate
// left under the active constraints.
type SelectionExhaustedError struct {
	Kind       Kind
	Constraint string
}

func (e *SelectionExhaustedError) Error() string {
	return fmt.Sprintf("no eligible %s mutator: %s", e.Kind, e.Constraint)
}

// Is makes errors.Is(err, ErrSelectionExhausted) work.
func (e *SelectionExhaustedError) Is(target error) bool {
	return target == ErrSelectionExhausted
}
