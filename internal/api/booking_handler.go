package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/api/shared"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/service"
)

// BookingHandler serves booking creation, listing and status changes.
type BookingHandler struct {
	bookings service.BookingService
	logger   *slog.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(bookings service.BookingService, logger *slog.Logger) *BookingHandler {
	if bookings == nil {
		panic("booking service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingHandler{
		bookings: bookings,
		logger:   logger.With(slog.String("component", "booking_handler")),
	}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var req CreateBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	providerID := uuid.MustParse(req.ProviderID) // validated as uuid

	booking, err := h.bookings.Create(r.Context(), p, providerID, req.DateTime)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create booking")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("provider_id", providerID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, toBookingResponse(booking))
}

// List handles GET /bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	bookings, err := h.bookings.ListForUser(r.Context(), p)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list bookings")
		return
	}

	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// UpdateStatus handles PATCH /bookings/{id}/status.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	var req UpdateBookingStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.bookings.UpdateStatus(r.Context(), p, id, domain.BookingStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update booking")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toBookingResponse(booking))
}
