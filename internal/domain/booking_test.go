package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	providerID := uuid.New()
	when := time.Now().Add(24 * time.Hour)

	b, err := NewBooking(customerID, providerID, when)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, BookingStatusPending, b.Status)
	assert.Equal(t, time.UTC, b.DateTime.Location())

	_, err = NewBooking(uuid.Nil, providerID, when)
	assert.ErrorIs(t, err, ErrEmptyBookingCustomerID)

	_, err = NewBooking(customerID, uuid.Nil, when)
	assert.ErrorIs(t, err, ErrEmptyBookingProviderID)

	_, err = NewBooking(customerID, providerID, time.Time{})
	assert.ErrorIs(t, err, ErrEmptyBookingDateTime)
}

func TestBookingStatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{BookingStatusPending, BookingStatusCompleted, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusCompleted, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},
		{BookingStatusPending, BookingStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.False(t, BookingStatusPending.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
}

func TestBookingCheckTransition(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	providerUserID := uuid.New()
	stranger := uuid.New()

	booking := func(status BookingStatus) *Booking {
		return &Booking{
			ID:             uuid.New(),
			CustomerID:     customerID,
			ProviderID:     uuid.New(),
			ProviderUserID: providerUserID,
			DateTime:       time.Now().Add(time.Hour),
			Status:         status,
		}
	}

	tests := []struct {
		name    string
		status  BookingStatus
		actor   uuid.UUID
		next    BookingStatus
		wantErr error
	}{
		{"provider completes", BookingStatusPending, providerUserID, BookingStatusCompleted, nil},
		{"provider cancels", BookingStatusPending, providerUserID, BookingStatusCancelled, nil},
		{"customer cancels", BookingStatusPending, customerID, BookingStatusCancelled, nil},
		{"customer cannot complete", BookingStatusPending, customerID, BookingStatusCompleted, ErrForbidden},
		{"stranger cannot cancel", BookingStatusPending, stranger, BookingStatusCancelled, ErrForbidden},
		{"completed is final", BookingStatusCompleted, customerID, BookingStatusCancelled, ErrInvalidTransition},
		{"cancelled is final", BookingStatusCancelled, providerUserID, BookingStatusCompleted, ErrInvalidTransition},
		{"customer completing a finished booking", BookingStatusCompleted, customerID, BookingStatusCompleted, ErrInvalidTransition},
		{"customer completing a cancelled booking", BookingStatusCancelled, customerID, BookingStatusCompleted, ErrInvalidTransition},
		{"stranger on a finished booking", BookingStatusCompleted, stranger, BookingStatusCancelled, ErrForbidden},
		{"back to pending", BookingStatusPending, providerUserID, BookingStatusPending, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking(tt.status).CheckTransition(tt.actor, tt.next)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
