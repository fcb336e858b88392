package events

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	log, _ := logger.NewTestLogger()

	t.Run("no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(log)
		assert.NoError(t, Emit(context.Background(), emitter, TypeBookingCreated, BookingPayload{}))
	})

	t.Run("routes by type", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(log)
		all := &MockEventHandler{}
		bookings := &MockEventHandler{}
		reviews := &MockEventHandler{}
		emitter.RegisterHandler(all)
		emitter.Subscribe(TypeBookingCreated, bookings)
		emitter.Subscribe(TypeReviewSubmitted, reviews)

		require.NoError(t, Emit(context.Background(), emitter, TypeBookingCreated, BookingPayload{}))

		assert.Equal(t, 1, all.HandledCount)
		assert.Equal(t, 1, bookings.HandledCount)
		assert.Zero(t, reviews.HandledCount)
		assert.Equal(t, TypeBookingCreated, bookings.LastEvent.Type)
	})

	t.Run("failing handler does not stop the rest", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(log)
		first := &MockEventHandler{HandlerError: errors.New("first")}
		second := &MockEventHandler{HandlerError: errors.New("second")}
		third := &MockEventHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)
		emitter.RegisterHandler(third)

		err := Emit(context.Background(), emitter, TypeBookingStatusChanged, BookingPayload{})
		assert.EqualError(t, err, "first")
		assert.Equal(t, 1, third.HandledCount)
	})
}
