package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrEmptyTitle is returned when a task title is empty or only whitespace.
	ErrEmptyTitle = fmt.Errorf("%w: task title cannot be empty", ErrValidation)

	// ErrInvalidPriority is returned when a priority is outside Low..High.
	ErrInvalidPriority = fmt.Errorf("%w: priority must be 0, 1 or 2", ErrValidation)

	// ErrInvalidDeadline is returned when a deadline string cannot be parsed.
	ErrInvalidDeadline = fmt.Errorf("%w: invalid deadline", ErrInvalidFormat)
)

// IsValidationError reports whether err is any kind of validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidFormat)
}
