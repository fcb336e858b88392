package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/api/shared"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/stretchr/testify/require"
)

type apiCall struct {
	method    string
	pattern   string
	path      string
	body      any
	rawBody   string
	principal *domain.Principal
}

// serve routes one request through a chi router so that path parameters
// resolve, with the principal injected as the auth middleware would.
func serve(t *testing.T, h http.HandlerFunc, c apiCall) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	switch {
	case c.rawBody != "":
		body.WriteString(c.rawBody)
	case c.body != nil:
		require.NoError(t, json.NewEncoder(&body).Encode(c.body))
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if c.principal != nil {
				req = req.WithContext(shared.WithPrincipal(req.Context(), *c.principal))
			}
			next.ServeHTTP(w, req)
		})
	})
	pattern := c.pattern
	if pattern == "" {
		pattern = c.path
	}
	r.Method(c.method, pattern, h)

	req := httptest.NewRequest(c.method, c.path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, w).Error
}

func asRole(role domain.Role) *domain.Principal {
	return &domain.Principal{UserID: uuid.New(), Role: role}
}
