package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/api/shared"
	"github.com/phrazzld/servicely-api/internal/service"
)

// ReviewHandler serves review submission.
type ReviewHandler struct {
	reviews service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviews service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviews == nil {
		panic("review service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// Submit handles POST /reviews.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var req SubmitReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.reviews.Submit(r.Context(), p, uuid.MustParse(req.BookingID), req.Rating, req.Comment)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit review")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SubmitReviewResponse{
		ReviewResponse:      toReviewResponse(result.Review),
		ProviderRatingAvg:   result.RatingAvg,
		ProviderRatingCount: result.RatingCount,
	})
}
