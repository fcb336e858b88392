package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/mocks/servicemocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminHandler() (*AdminHandler, *servicemocks.AdminService, *servicemocks.ProviderService) {
	admin := new(servicemocks.AdminService)
	providers := new(servicemocks.ProviderService)
	return NewAdminHandler(admin, providers, nil), admin, providers
}

func TestAdminHandler_SetVerification(t *testing.T) {
	t.Parallel()
	caller := asRole(domain.RoleAdmin)
	id := uuid.New()
	pattern := "/admin/providers/{id}/verification"
	path := "/admin/providers/" + id.String() + "/verification"

	t.Run("approve", func(t *testing.T) {
		h, _, providers := newAdminHandler()
		profile := sampleProfile(true)
		profile.ID = id
		providers.On("SetVerification", mock.Anything, *caller, id, true).Return(profile, nil).Once()

		w := serve(t, h.SetVerification, apiCall{
			method: http.MethodPost, pattern: pattern, path: path,
			body: map[string]any{"approve": true}, principal: caller,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decodeBody[ProviderResponse](t, w).Verified)
	})

	t.Run("reject is explicit false", func(t *testing.T) {
		h, _, providers := newAdminHandler()
		profile := sampleProfile(false)
		providers.On("SetVerification", mock.Anything, *caller, id, false).Return(profile, nil).Once()

		w := serve(t, h.SetVerification, apiCall{
			method: http.MethodPost, pattern: pattern, path: path,
			body: map[string]any{"approve": false}, principal: caller,
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("approve is required", func(t *testing.T) {
		h, _, _ := newAdminHandler()
		w := serve(t, h.SetVerification, apiCall{
			method: http.MethodPost, pattern: pattern, path: path,
			body: map[string]any{}, principal: caller,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown provider", func(t *testing.T) {
		h, _, providers := newAdminHandler()
		providers.On("SetVerification", mock.Anything, *caller, id, true).Return(nil, domain.ErrNotFound).Once()

		w := serve(t, h.SetVerification, apiCall{
			method: http.MethodPost, pattern: pattern, path: path,
			body: map[string]any{"approve": true}, principal: caller,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminHandler_Analytics(t *testing.T) {
	t.Parallel()
	caller := asRole(domain.RoleAdmin)

	t.Run("default limit", func(t *testing.T) {
		h, admin, _ := newAdminHandler()
		analytics := &domain.Analytics{
			TopServices:     []domain.CountEntry{{Key: "plumbing", Count: 2}},
			PopularPincodes: []domain.CountEntry{{Key: "110001", Count: 2}},
			TotalBookings:   2,
			GeneratedAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		admin.On("Analytics", mock.Anything, *caller, 0).Return(analytics, nil).Once()

		w := serve(t, h.Analytics, apiCall{method: http.MethodGet, path: "/admin/analytics", principal: caller})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"top_services": [{"key": "plumbing", "count": 2}],
			"popular_locations": [{"key": "110001", "count": 2}],
			"total_bookings": 2,
			"generated_at": "2026-03-01T00:00:00Z"
		}`, w.Body.String())
	})

	t.Run("explicit limit", func(t *testing.T) {
		h, admin, _ := newAdminHandler()
		admin.On("Analytics", mock.Anything, *caller, 10).Return(&domain.Analytics{}, nil).Once()

		w := serve(t, h.Analytics, apiCall{method: http.MethodGet, pattern: "/admin/analytics", path: "/admin/analytics?limit=10", principal: caller})
		assert.Equal(t, http.StatusOK, w.Code)
		admin.AssertExpectations(t)
	})

	t.Run("store failure is opaque", func(t *testing.T) {
		h, admin, _ := newAdminHandler()
		admin.On("Analytics", mock.Anything, *caller, 0).
			Return(nil, errors.New("failed to compute analytics: pq: relation \"bookings\" does not exist")).Once()

		w := serve(t, h.Analytics, apiCall{method: http.MethodGet, path: "/admin/analytics", principal: caller})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to compute analytics", errorMessage(t, w))
		assert.NotContains(t, w.Body.String(), "relation")
	})
}

func TestAdminHandler_ListsAndAudit(t *testing.T) {
	t.Parallel()
	caller := asRole(domain.RoleAdmin)
	h, admin, _ := newAdminHandler()

	admin.On("ListUnverified", mock.Anything, *caller).Return([]*domain.ProviderProfile{sampleProfile(false)}, nil).Once()
	w := serve(t, h.ListUnverified, apiCall{method: http.MethodGet, path: "/admin/providers/unverified", principal: caller})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]ProviderResponse](t, w), 1)

	admin.On("AuditLog", mock.Anything, *caller, 0).Return(nil, nil).Once()
	w = serve(t, h.AuditLog, apiCall{method: http.MethodGet, path: "/admin/audit-log", principal: caller})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	admin.On("AuditLog", mock.Anything, *caller, 1000).
		Return(nil, domain.NewValidationError("limit", "must be between 1 and 500", nil)).Once()
	w = serve(t, h.AuditLog, apiCall{method: http.MethodGet, pattern: "/admin/audit-log", path: "/admin/audit-log?limit=1000", principal: caller})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
