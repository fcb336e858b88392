package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := BookingPayload{
		BookingID:  uuid.New(),
		CustomerID: uuid.New(),
		ProviderID: uuid.New(),
		Status:     "pending",
	}

	event, err := NewEvent(TypeBookingCreated, payload)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeBookingCreated, event.Type)
	assert.False(t, event.OccurredAt.IsZero())

	var decoded BookingPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	_, err := NewEvent("bad", make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *Event
	HandlerError error
	HandledCount int
}

func (h *MockEventHandler) HandleEvent(_ context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestEmit_NilEmitter(t *testing.T) {
	assert.NoError(t, Emit(context.Background(), nil, TypeReviewSubmitted, ReviewPayload{}))
}

func TestHandlerFunc(t *testing.T) {
	var got string
	h := HandlerFunc(func(_ context.Context, e *Event) error {
		got = e.Type
		return errors.New("boom")
	})
	err := h.HandleEvent(context.Background(), &Event{Type: TypeBookingStatusChanged})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, TypeBookingStatusChanged, got)
}
