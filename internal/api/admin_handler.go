package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/servicely-api/internal/api/shared"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/service"
)

// AdminHandler serves the admin dashboard endpoints.
type AdminHandler struct {
	admin     service.AdminService
	providers service.ProviderService
	logger    *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin service.AdminService, providers service.ProviderService, logger *slog.Logger) *AdminHandler {
	if admin == nil || providers == nil {
		panic("admin handler dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		admin:     admin,
		providers: providers,
		logger:    logger.With(slog.String("component", "admin_handler")),
	}
}

// ListUnverified handles GET /admin/providers/unverified.
func (h *AdminHandler) ListUnverified(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	profiles, err := h.admin.ListUnverified(r.Context(), p)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list providers")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toProviderResponses(profiles))
}

// SetVerification handles POST /admin/providers/{id}/verification.
func (h *AdminHandler) SetVerification(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUIDOrError(w, r, "id")
	if !ok {
		return
	}
	var req VerificationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	profile, err := h.providers.SetVerification(r.Context(), p, id, *req.Approve)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update verification")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("provider verification changed",
		slog.String("provider_id", id.String()),
		slog.String("admin_id", p.UserID.String()),
		slog.Bool("verified", profile.Verified))
	shared.RespondWithJSON(w, r, http.StatusOK, toProviderResponse(profile))
}

// Analytics handles GET /admin/analytics?limit=.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	limit, ok := queryIntOrError(w, r, "limit", 0)
	if !ok {
		return
	}

	analytics, err := h.admin.Analytics(r.Context(), p, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute analytics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, analytics)
}

// AuditLog handles GET /admin/audit-log?limit=.
func (h *AdminHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	limit, ok := queryIntOrError(w, r, "limit", 0)
	if !ok {
		return
	}

	entries, err := h.admin.AuditLog(r.Context(), p, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load audit log")
		return
	}

	if entries == nil {
		entries = []*domain.AuditEntry{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}
