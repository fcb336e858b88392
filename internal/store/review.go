package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
)

// ReviewStore defines the interface for review persistence and rating aggregation.
type ReviewStore interface {
	// Create inserts the review and folds its rating into the provider's
	// aggregate in one statement. The insert only happens if the booking is
	// completed and belongs to review.CustomerID.
	// Returns ErrReviewExists if the booking already has a review.
	// Returns ErrBookingNotReviewable if the booking is not completed or not
	// owned by the reviewer.
	// Returns the provider's aggregate after the insert.
	Create(ctx context.Context, review *domain.Review) (domain.RatingAggregate, error)

	// ExistsForBooking reports whether bookingID already has a review.
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)

	// ListForProvider returns the provider's reviews, newest first.
	// Returns an empty slice if there are none.
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Review, error)

	// WithTx returns a ReviewStore that runs its queries in tx.
	WithTx(tx *sql.Tx) ReviewStore
}
