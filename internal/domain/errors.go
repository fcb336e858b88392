package domain

import (
	"errors"
	"fmt"
)

// Business rule errors. Each of these is client-correctable and maps to a
// 4xx response at the API boundary.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrNotFound is returned when the requested entity does not exist or is
	// not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller's role or relationship to the
	// entity does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateProfile is returned when a provider user registers a second profile.
	ErrDuplicateProfile = errors.New("provider profile already exists")

	// ErrProviderUnverified is returned when booking a provider that has not
	// been approved by an admin.
	ErrProviderUnverified = errors.New("provider is not verified")

	// ErrInvalidSchedule is returned when a booking time is not in the future.
	ErrInvalidSchedule = errors.New("booking time must be in the future")

	// ErrInvalidTransition is returned when a booking status change is not
	// allowed by the lifecycle.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrInvalidState is returned when an entity is not in the state an
	// operation requires, e.g. reviewing a booking that is not completed.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrDuplicateReview is returned when a booking already has a review.
	ErrDuplicateReview = errors.New("booking already reviewed")

	// ErrInvalidRating is returned when a rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrConflict is returned when a concurrent writer won a compare-and-set
	// or an identical request was already applied. Safe to retry.
	ErrConflict = errors.New("conflict")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Unwrap returns the more specific cause, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}
