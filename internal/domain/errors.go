package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates malformed input: empty task text,
	// non-positive duration, out-of-range reorder index.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState indicates a session transition attempted from a
	// state that forbids it, including any transition on a terminal session.
	ErrInvalidState = errors.New("invalid session state")

	// ErrConflict indicates a second open session for the same user.
	ErrConflict = errors.New("another open session exists")

	// ErrMandatoryOutstanding indicates completion was blocked because
	// mandatory checklist items are neither completed nor skipped.
	ErrMandatoryOutstanding = errors.New("mandatory checklist items outstanding")

	// ErrReferential indicates an operation referenced an entity that is
	// not part of the expected parent (an item id missing from a session
	// snapshot) or a deletion blocked by existing children.
	ErrReferential = errors.New("referential constraint violated")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// Validationf wraps ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidStatef wraps ErrInvalidState with a formatted detail message.
func InvalidStatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// Referentialf wraps ErrReferential with a formatted detail message.
func Referentialf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrReferential, fmt.Sprintf(format, args...))
}
