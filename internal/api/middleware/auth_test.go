package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/api/shared"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-32-characters"

func capturePrincipal(got **domain.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = shared.OptionalPrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	now := time.Now()
	jwtSvc := auth.NewTestJWTService(testSecret, time.Hour, func() time.Time { return now })
	expiredSvc := auth.NewTestJWTService(testSecret, time.Minute, func() time.Time { return now.Add(-2 * time.Hour) })
	userID := uuid.New()

	valid, err := jwtSvc.GenerateToken(context.Background(), userID, domain.RoleProvider)
	require.NoError(t, err)
	refresh, err := jwtSvc.GenerateRefreshToken(context.Background(), userID, domain.RoleProvider)
	require.NoError(t, err)
	expired, err := expiredSvc.GenerateToken(context.Background(), userID, domain.RoleProvider)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "Invalid authorization format"},
		{"no token", "Bearer ", http.StatusUnauthorized, "Invalid authorization format"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "Invalid token"},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized, "Invalid token"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "Token expired"},
	}

	mw := NewAuthMiddleware(jwtSvc)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got *domain.Principal
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			mw.Authenticate(capturePrincipal(&got)).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, got)
				assert.Equal(t, domain.Principal{UserID: userID, Role: domain.RoleProvider}, *got)
				return
			}
			assert.Contains(t, w.Body.String(), tt.wantError)
		})
	}
}

func TestAuthMiddleware_OptionalAuthenticate(t *testing.T) {
	t.Parallel()
	jwtSvc := auth.RequireTestJWTService(t)
	mw := NewAuthMiddleware(jwtSvc)

	t.Run("anonymous passes through", func(t *testing.T) {
		got := &domain.Principal{}
		w := httptest.NewRecorder()
		mw.OptionalAuthenticate(capturePrincipal(&got)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, got)
	})

	t.Run("valid token sets principal", func(t *testing.T) {
		var got *domain.Principal
		id := uuid.New()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", auth.AuthHeaderForTesting(t, jwtSvc, id, domain.RoleAdmin))
		w := httptest.NewRecorder()
		mw.OptionalAuthenticate(capturePrincipal(&got)).ServeHTTP(w, r)
		require.NotNil(t, got)
		assert.Equal(t, id, got.UserID)
	})

	t.Run("bad token is still rejected", func(t *testing.T) {
		var got *domain.Principal
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		mw.OptionalAuthenticate(capturePrincipal(&got)).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := RequireRole(domain.RoleAdmin)(ok)

	tests := []struct {
		name       string
		principal  *domain.Principal
		wantStatus int
	}{
		{"admin", &domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}, http.StatusNoContent},
		{"customer", &domain.Principal{UserID: uuid.New(), Role: domain.RoleCustomer}, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.principal != nil {
				r = r.WithContext(shared.WithPrincipal(r.Context(), *tt.principal))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
