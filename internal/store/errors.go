package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint (email, provider user, booking slot, review per booking).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or violates a foreign key or check constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConflict is returned when a conditional write matched no row because
	// the stored state no longer equals the expected state.
	ErrConflict = errors.New("concurrent modification")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrProviderNotFound indicates that the requested provider profile does not exist.
	ErrProviderNotFound = fmt.Errorf("%w: provider", ErrNotFound)

	// ErrBookingNotFound indicates that the requested booking does not exist.
	ErrBookingNotFound = fmt.Errorf("%w: booking", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrProviderProfileExists indicates the user already owns a provider profile.
	ErrProviderProfileExists = fmt.Errorf("%w: provider profile", ErrDuplicate)

	// ErrBookingExists indicates a booking for the same customer, provider and time exists.
	ErrBookingExists = fmt.Errorf("%w: booking slot", ErrDuplicate)

	// ErrReviewExists indicates the booking already has a review.
	ErrReviewExists = fmt.Errorf("%w: review", ErrDuplicate)

	// Conditional write failures

	// ErrProviderNotVerified is returned when a booking insert is gated out
	// because the provider is not verified.
	ErrProviderNotVerified = errors.New("provider not verified")

	// ErrBookingNotReviewable is returned when a review insert is gated out
	// because the booking is not completed or not owned by the reviewer.
	ErrBookingNotReviewable = errors.New("booking not reviewable")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
