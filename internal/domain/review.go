package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Rating bounds (inclusive)
const (
	MinRating = 1
	MaxRating = 5

	MaxCommentLength = 2000
)

// Validation errors for Review
var (
	ErrEmptyReviewID        = NewValidationError("id", "cannot be empty", ErrInvalidID)
	ErrEmptyReviewBookingID = NewValidationError("booking_id", "cannot be empty", ErrInvalidID)
	ErrCommentTooLong       = NewValidationError("comment", "must be at most 2000 characters", nil)
)

// Review is a customer's rating of a completed booking. Reviews are immutable.
type Review struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidateRating returns ErrInvalidRating unless r is within 1..5.
func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// NewReview creates a Review for the given booking.
func NewReview(booking *Booking, rating int, comment string) (*Review, error) {
	r := &Review{
		ID:         uuid.New(),
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		ProviderID: booking.ProviderID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		CreatedAt:  time.Now().UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks if the Review has valid data.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReviewID
	}
	if r.BookingID == uuid.Nil {
		return ErrEmptyReviewBookingID
	}
	if err := ValidateRating(r.Rating); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Comment) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

// RatingAggregate is a provider's running review statistics.
type RatingAggregate struct {
	Sum   int64
	Count int
}

// Add returns the aggregate after one more rating.
func (a RatingAggregate) Add(rating int) RatingAggregate {
	return RatingAggregate{Sum: a.Sum + int64(rating), Count: a.Count + 1}
}

// Average is Sum/Count, or 0 with no ratings. It matches
// (old_avg*old_count + rating)/(old_count+1) without accumulating float error.
func (a RatingAggregate) Average() float64 {
	if a.Count == 0 {
		return 0
	}
	return float64(a.Sum) / float64(a.Count)
}
