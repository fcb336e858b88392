package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/servicely-api/internal/api"
	apiMiddleware "github.com/phrazzld/servicely-api/internal/api/middleware"
	"github.com/phrazzld/servicely-api/internal/api/shared"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
)

const healthTimeout = 2 * time.Second

type routerHandlers struct {
	auth      *api.AuthHandler
	providers *api.ProviderHandler
	bookings  *api.BookingHandler
	reviews   *api.ReviewHandler
	admin     *api.AdminHandler
}

// pinger is satisfied by *sql.DB.
type pinger interface {
	PingContext(ctx context.Context) error
}

// metricsSink is satisfied by *metrics.Metrics.
type metricsSink interface {
	apiMiddleware.HTTPObserver
	Handler() http.Handler
}

type routerDeps struct {
	logger         *slog.Logger
	handlers       routerHandlers
	auth           *apiMiddleware.AuthMiddleware
	limiter        *apiMiddleware.IPRateLimiter
	metrics        metricsSink
	db             pinger
	allowedOrigins []string
}

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	return newRouter(routerDeps{
		logger:         app.logger,
		handlers:       app.handlers(),
		auth:           apiMiddleware.NewAuthMiddleware(app.jwtService),
		limiter:        app.limiter,
		metrics:        app.metrics,
		db:             app.db,
		allowedOrigins: app.config.Server.AllowedOrigins,
	})
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(d.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Metrics(d.metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{apiMiddleware.TraceHeader, "Retry-After"},
		MaxAge:         300,
	}))

	h := d.handlers
	authn := d.auth

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(d.limiter.Limit).Post("/register", h.auth.Register)
			r.With(d.limiter.Limit).Post("/login", h.auth.Login)
			r.Post("/refresh", h.auth.Refresh)
		})

		r.Route("/providers", func(r chi.Router) {
			r.Get("/", h.providers.List)
			r.With(authn.Authenticate).Get("/me", h.providers.Me)
			r.With(authn.Authenticate, apiMiddleware.RequireRole(domain.RoleProvider)).
				Post("/", h.providers.Register)
			r.With(authn.OptionalAuthenticate).Get("/{id}", h.providers.Get)
			r.Get("/{id}/reviews", h.providers.Reviews)
		})

		// Session routes
		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)

			r.Get("/users/me", h.auth.Me)

			r.With(apiMiddleware.RequireRole(domain.RoleCustomer)).Post("/bookings", h.bookings.Create)
			r.Get("/bookings", h.bookings.List)
			r.Patch("/bookings/{id}/status", h.bookings.UpdateStatus)

			r.Post("/reviews", h.reviews.Submit)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Use(apiMiddleware.RequireRole(domain.RoleAdmin))

			r.Get("/providers/unverified", h.admin.ListUnverified)
			r.Post("/providers/{id}/verification", h.admin.SetVerification)
			r.Get("/analytics", h.admin.Analytics)
			r.Get("/audit-log", h.admin.AuditLog)
		})
	})

	r.Get("/health", healthHandler(d.db))
	r.Method(http.MethodGet, "/metrics", d.metrics.Handler())

	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// healthHandler reports liveness together with database reachability.
func healthHandler(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.FromContext(r.Context()).Error("health check database ping failed", "error", err)
			shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, healthResponse{
				Status:   "unavailable",
				Database: "unreachable",
			})
			return
		}

		shared.RespondWithJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
	}
}
