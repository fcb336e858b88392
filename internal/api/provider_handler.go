package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/servicely-api/internal/api/shared"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/service"
)

// ProviderHandler serves provider registration, search and profiles.
type ProviderHandler struct {
	providers service.ProviderService
	reviews   service.ReviewService
	logger    *slog.Logger
}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler(
	providers service.ProviderService,
	reviews service.ReviewService,
	logger *slog.Logger,
) *ProviderHandler {
	if providers == nil || reviews == nil {
		panic("provider handler dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProviderHandler{
		providers: providers,
		reviews:   reviews,
		logger:    logger.With(slog.String("component", "provider_handler")),
	}
}

// Register handles POST /providers.
func (h *ProviderHandler) Register(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	var req RegisterProviderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.providers.Register(r.Context(), p, service.RegisterProviderInput{
		Services:       req.Services,
		Experience:     req.Experience,
		Pincode:        req.Pincode,
		ContactInfo:    req.ContactInfo,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to register provider")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toProviderResponse(profile))
}

// List handles GET /providers?category=&pincode=&sort_by=&limit=&offset=.
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := queryIntOrError(w, r, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryIntOrError(w, r, "offset", 0)
	if !ok {
		return
	}

	profiles, err := h.providers.List(r.Context(), domain.ProviderFilter{
		Category: q.Get("category"),
		Pincode:  q.Get("pincode"),
		SortBy:   domain.ProviderSort(q.Get("sort_by")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list providers")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toProviderResponses(profiles))
}

// Get handles GET /providers/{id}.
func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.providers.Get(r.Context(), shared.OptionalPrincipalFrom(r.Context()), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toProviderResponse(profile))
}

// Me handles GET /providers/me.
func (h *ProviderHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	profile, err := h.providers.GetByUserID(r.Context(), p)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toProviderResponse(profile))
}

// Reviews handles GET /providers/{id}/reviews.
func (h *ProviderHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.reviews.ListForProvider(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reviews")
		return
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, toReviewResponse(rv))
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("listed provider reviews",
		slog.String("provider_id", id.String()),
		slog.Int("count", len(out)))
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
