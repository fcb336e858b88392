package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRating(t *testing.T) {
	t.Parallel()

	for r := MinRating; r <= MaxRating; r++ {
		assert.NoError(t, ValidateRating(r))
	}
	assert.ErrorIs(t, ValidateRating(0), ErrInvalidRating)
	assert.ErrorIs(t, ValidateRating(6), ErrInvalidRating)
	assert.ErrorIs(t, ValidateRating(-3), ErrInvalidRating)
}

func TestNewReview(t *testing.T) {
	t.Parallel()

	booking := &Booking{ID: uuid.New(), CustomerID: uuid.New(), ProviderID: uuid.New()}

	r, err := NewReview(booking, 4, "  tidy work  ")
	require.NoError(t, err)
	assert.Equal(t, booking.ID, r.BookingID)
	assert.Equal(t, booking.ProviderID, r.ProviderID)
	assert.Equal(t, "tidy work", r.Comment)

	_, err = NewReview(booking, 9, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = NewReview(booking, 3, strings.Repeat("a", MaxCommentLength+1))
	assert.ErrorIs(t, err, ErrCommentTooLong)

	// the limit is in characters, not bytes
	r, err = NewReview(booking, 3, strings.Repeat("é", MaxCommentLength))
	require.NoError(t, err)
	assert.Equal(t, MaxCommentLength, utf8.RuneCountInString(r.Comment))

	_, err = NewReview(booking, 3, strings.Repeat("é", MaxCommentLength+1))
	assert.ErrorIs(t, err, ErrCommentTooLong)
}

func TestRatingAggregate(t *testing.T) {
	t.Parallel()

	var agg RatingAggregate
	assert.Equal(t, 0.0, agg.Average())

	for _, r := range []int{5, 3, 4} {
		agg = agg.Add(r)
	}
	assert.Equal(t, 3, agg.Count)
	assert.InDelta(t, 4.0, agg.Average(), 1e-9)

	agg = agg.Add(2)
	assert.Equal(t, 4, agg.Count)
	assert.InDelta(t, 3.5, agg.Average(), 1e-9)
}

func TestRatingAggregateNoDrift(t *testing.T) {
	t.Parallel()

	// Thousands of thirds would drift under incremental float averaging.
	var agg RatingAggregate
	for i := 0; i < 3000; i++ {
		agg = agg.Add(1 + i%3)
	}
	assert.Equal(t, 2.0, agg.Average())
}
