package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	TypeBookingCreated              = "booking.created"
	TypeBookingStatusChanged        = "booking.status_changed"
	TypeReviewSubmitted             = "review.submitted"
	TypeProviderVerificationChanged = "provider.verification_changed"
)

// Event is a record of something that happened in the domain.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// BookingPayload accompanies booking events.
type BookingPayload struct {
	BookingID  uuid.UUID `json:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Status     string    `json:"status"`
}

// ReviewPayload accompanies review.submitted.
type ReviewPayload struct {
	ReviewID    uuid.UUID `json:"review_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	Rating      int       `json:"rating"`
	RatingAvg   float64   `json:"rating_avg"`
	RatingCount int       `json:"rating_count"`
}

// VerificationPayload accompanies provider.verification_changed.
type VerificationPayload struct {
	ProviderID uuid.UUID `json:"provider_id"`
	AdminID    uuid.UUID `json:"admin_id"`
	Verified   bool      `json:"verified"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event of the given type with a JSON-encoded payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:         uuid.New(),
		Type:       eventType,
		Payload:    payloadBytes,
		OccurredAt: time.Now().UTC(),
	}, nil
}

// EventHandler processes events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter publishes events to registered handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *Event) error
}

// Emit builds an event and publishes it. Failures are returned to the
// caller to log; the write the event describes has already happened.
func Emit(ctx context.Context, emitter EventEmitter, eventType string, payload any) error {
	if emitter == nil {
		return nil
	}
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	return emitter.EmitEvent(ctx, event)
}
