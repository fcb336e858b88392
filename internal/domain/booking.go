package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

// Booking lifecycle: pending -> completed | cancelled. Both targets are terminal.
const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Validation errors for Booking
var (
	ErrEmptyBookingID         = NewValidationError("id", "cannot be empty", ErrInvalidID)
	ErrEmptyBookingCustomerID = NewValidationError("customer_id", "cannot be empty", ErrInvalidID)
	ErrEmptyBookingProviderID = NewValidationError("provider_id", "cannot be empty", ErrInvalidID)
	ErrEmptyBookingDateTime   = NewValidationError("date_time", "cannot be empty", nil)
	ErrInvalidBookingStatus   = NewValidationError("status", "is not a valid booking status", nil)
)

// IsValid reports whether s is a known status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingStatusPending &&
		(next == BookingStatusCompleted || next == BookingStatusCancelled)
}

// Booking is a scheduled engagement between a customer and a provider.
// ProviderUserID is the user account behind ProviderID; it is loaded with the
// booking so authorization does not need a second lookup.
type Booking struct {
	ID             uuid.UUID     `json:"id"`
	CustomerID     uuid.UUID     `json:"customer_id"`
	ProviderID     uuid.UUID     `json:"provider_id"`
	ProviderUserID uuid.UUID     `json:"-"`
	DateTime       time.Time     `json:"date_time"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewBooking creates a pending booking. Schedule policy (future-only) is
// checked by the caller against its own clock.
func NewBooking(customerID, providerID uuid.UUID, dateTime time.Time) (*Booking, error) {
	now := time.Now().UTC()
	b := &Booking{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProviderID: providerID,
		DateTime:   dateTime.UTC(),
		Status:     BookingStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate checks if the Booking has valid data.
func (b *Booking) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBookingID
	}
	if b.CustomerID == uuid.Nil {
		return ErrEmptyBookingCustomerID
	}
	if b.ProviderID == uuid.Nil {
		return ErrEmptyBookingProviderID
	}
	if b.DateTime.IsZero() {
		return ErrEmptyBookingDateTime
	}
	if !b.Status.IsValid() {
		return ErrInvalidBookingStatus
	}
	return nil
}

// IsParticipant reports whether userID is the customer or the provider of the booking.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return userID != uuid.Nil && (userID == b.CustomerID || userID == b.ProviderUserID)
}

// CheckTransition applies the per-actor rules for a status change requested
// by userID. Providers may complete and either participant may cancel.
// Outsiders are refused first; after that a terminal booking rejects every
// change before any per-role rule applies.
func (b *Booking) CheckTransition(userID uuid.UUID, next BookingStatus) error {
	if !b.IsParticipant(userID) {
		return ErrForbidden
	}
	if b.Status.IsTerminal() {
		return ErrInvalidTransition
	}
	if next == BookingStatusCompleted && userID != b.ProviderUserID {
		return ErrForbidden
	}
	if !b.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	return nil
}
