package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
)

// BookingStore defines the interface for booking persistence. Every write is
// a single conditional statement so that concurrent callers cannot
// double-book a slot or apply two transitions to the same booking.
type BookingStore interface {
	// Create inserts a pending booking only if the provider exists and is
	// verified at the time of the insert.
	// Returns ErrProviderNotFound if the provider does not exist.
	// Returns ErrProviderNotVerified if the provider is not verified.
	// Returns ErrBookingExists if the (customer, provider, date_time) slot is taken.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking, including the provider's user ID.
	// Returns ErrBookingNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)

	// UpdateStatus moves a booking from `from` to `to` only if its stored
	// status still equals `from` (compare-and-set).
	// Returns ErrBookingNotFound if it does not exist.
	// Returns ErrConflict if the stored status differs from `from`.
	UpdateStatus(
		ctx context.Context,
		id uuid.UUID,
		from domain.BookingStatus,
		to domain.BookingStatus,
	) (*domain.Booking, error)

	// ListForUser returns bookings where userID is the customer or the
	// provider's user, newest date_time first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error)

	// WithTx returns a BookingStore that runs its queries in tx.
	WithTx(tx *sql.Tx) BookingStore
}
