package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/servicely-api/internal/api"
	apiMiddleware "github.com/phrazzld/servicely-api/internal/api/middleware"
	"github.com/phrazzld/servicely-api/internal/config"
	"github.com/phrazzld/servicely-api/internal/events"
	"github.com/phrazzld/servicely-api/internal/platform/cache"
	"github.com/phrazzld/servicely-api/internal/platform/metrics"
	"github.com/phrazzld/servicely-api/internal/platform/postgres"
	"github.com/phrazzld/servicely-api/internal/service"
	"github.com/phrazzld/servicely-api/internal/service/auth"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	jwtService     auth.JWTService
	metrics        *metrics.Metrics
	eventEmitter   *events.InMemoryEventEmitter
	analyticsCache cache.AnalyticsCache
	limiter        *apiMiddleware.IPRateLimiter

	identityService service.IdentityService
	providerService service.ProviderService
	bookingService  service.BookingService
	reviewService   service.ReviewService
	adminService    service.AdminService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.metrics, err = metrics.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	app.analyticsCache = app.setupAnalyticsCache(ctx)

	users := postgres.NewPostgresUserStore(db, logger, cfg.Auth.BcryptCost)
	providers := postgres.NewPostgresProviderStore(db, logger)
	bookings := postgres.NewPostgresBookingStore(db, logger)
	reviews := postgres.NewPostgresReviewStore(db, logger)
	admin := postgres.NewPostgresAdminStore(db, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(app.metrics)
	app.eventEmitter.Subscribe(events.TypeBookingCreated, analyticsInvalidator(app.analyticsCache))

	app.identityService = service.NewIdentityService(
		users,
		app.jwtService,
		auth.NewBcryptVerifier(cfg.Auth.BcryptCost),
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
		logger,
	)
	app.providerService = service.NewProviderService(providers, app.eventEmitter, logger)
	app.bookingService = service.NewBookingService(bookings, app.eventEmitter, logger)
	app.reviewService = service.NewReviewService(reviews, bookings, providers, app.eventEmitter, logger)
	app.adminService = service.NewAdminService(providers, admin, admin, app.analyticsCache, logger)

	app.limiter = apiMiddleware.NewIPRateLimiter(
		cfg.RateLimit.RequestsPerMinute,
		cfg.RateLimit.Burst,
		time.Minute,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupAnalyticsCache connects to Redis when a URL is configured. An
// unreachable server leaves the application running without a cache.
func (app *application) setupAnalyticsCache(ctx context.Context) cache.AnalyticsCache {
	if app.config.Cache.RedisURL == "" {
		app.logger.Info("Analytics cache disabled")
		return cache.NoopAnalyticsCache{}
	}

	client, err := cache.Open(ctx, app.config.Cache.RedisURL)
	if err != nil {
		app.logger.Warn("Redis unavailable, analytics will not be cached", "error", err)
		return cache.NoopAnalyticsCache{}
	}

	app.redis = client
	app.logger.Info("Analytics cache connected", "ttl", app.config.Cache.AnalyticsTTL.String())
	return cache.NewRedisAnalyticsCache(client, app.config.Cache.AnalyticsTTL, app.logger)
}

// analyticsInvalidator drops cached rollups whenever the booking set grows.
func analyticsInvalidator(c cache.AnalyticsCache) events.EventHandler {
	return events.HandlerFunc(func(ctx context.Context, _ *events.Event) error {
		return c.Invalidate(ctx)
	})
}

// handlers builds the HTTP handlers over the application's services.
func (app *application) handlers() routerHandlers {
	return routerHandlers{
		auth:      api.NewAuthHandler(app.identityService, app.logger),
		providers: api.NewProviderHandler(app.providerService, app.reviewService, app.logger),
		bookings:  api.NewBookingHandler(app.bookingService, app.logger),
		reviews:   api.NewReviewHandler(app.reviewService, app.logger),
		admin:     api.NewAdminHandler(app.adminService, app.providerService, app.logger),
	}
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.limiter != nil {
		app.limiter.Stop()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		closeDB(app.db, app.logger)
	}
}
