package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/events"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/store"
)

// BookingService runs the booking lifecycle.
type BookingService interface {
	// Create books a verified provider for a future time. Customers only.
	// An identical (customer, provider, time) request that already
	// succeeded returns ErrConflict.
	Create(ctx context.Context, p domain.Principal, providerID uuid.UUID, dateTime time.Time) (*domain.Booking, error)

	// UpdateStatus moves a pending booking to completed or cancelled. The
	// provider may complete; either participant may cancel.
	UpdateStatus(
		ctx context.Context,
		p domain.Principal,
		bookingID uuid.UUID,
		next domain.BookingStatus,
	) (*domain.Booking, error)

	// ListForUser returns the caller's bookings as customer or provider,
	// newest date_time first.
	ListForUser(ctx context.Context, p domain.Principal) ([]*domain.Booking, error)
}

type bookingService struct {
	bookings store.BookingStore
	emitter  events.EventEmitter
	timeFunc func() time.Time
	logger   *slog.Logger
}

// NewBookingService creates a BookingService. emitter may be nil.
func NewBookingService(
	bookings store.BookingStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) BookingService {
	if bookings == nil {
		panic("booking store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingService{
		bookings: bookings,
		emitter:  emitter,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "booking_service")),
	}
}

func (s *bookingService) Create(
	ctx context.Context,
	p domain.Principal,
	providerID uuid.UUID,
	dateTime time.Time,
) (*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireRole(p, domain.RoleCustomer); err != nil {
		return nil, err
	}
	if !dateTime.After(s.timeFunc()) {
		return nil, domain.ErrInvalidSchedule
	}

	booking, err := domain.NewBooking(p.UserID, providerID, dateTime)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, store.ErrBookingExists) {
			log.Info("duplicate booking request",
				slog.String("customer_id", p.UserID.String()),
				slog.String("provider_id", providerID.String()))
		}
		return nil, translateStoreError("create booking", err)
	}

	s.emit(ctx, events.TypeBookingCreated, booking)
	return booking, nil
}

func (s *bookingService) UpdateStatus(
	ctx context.Context,
	p domain.Principal,
	bookingID uuid.UUID,
	next domain.BookingStatus,
) (*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("booking_id", bookingID.String()),
		slog.String("next", string(next)))

	if !next.IsValid() {
		return nil, domain.ErrInvalidBookingStatus
	}

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, translateStoreError("load booking", err)
	}

	if err := current.CheckTransition(p.UserID, next); err != nil {
		log.Debug("status change rejected",
			slog.String("user_id", p.UserID.String()),
			slog.String("current", string(current.Status)),
			slog.String("reason", err.Error()))
		return nil, err
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, current.Status, next)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			log.Info("status change lost a concurrent update")
		}
		return nil, translateStoreError("update booking status", err)
	}

	s.emit(ctx, events.TypeBookingStatusChanged, updated)
	return updated, nil
}

func (s *bookingService) ListForUser(ctx context.Context, p domain.Principal) ([]*domain.Booking, error) {
	bookings, err := s.bookings.ListForUser(ctx, p.UserID)
	if err != nil {
		return nil, translateStoreError("list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) emit(ctx context.Context, eventType string, b *domain.Booking) {
	err := events.Emit(ctx, s.emitter, eventType, events.BookingPayload{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		ProviderID: b.ProviderID,
		Status:     string(b.Status),
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit booking event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
