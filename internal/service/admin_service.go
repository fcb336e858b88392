package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/cache"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// Audit log page size bounds
const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

// AdminService backs the admin dashboard. Every method requires the admin role.
type AdminService interface {
	// ListUnverified returns every unverified profile, newest first.
	ListUnverified(ctx context.Context, p domain.Principal) ([]*domain.ProviderProfile, error)

	// Analytics returns booking counts per service and per pincode, counts
	// descending with ties by name ascending, over bookings of any status.
	// limit 0 means DefaultAnalyticsLimit.
	Analytics(ctx context.Context, p domain.Principal, limit int) (*domain.Analytics, error)

	// AuditLog returns recent verification decisions, newest first.
	AuditLog(ctx context.Context, p domain.Principal, limit int) ([]*domain.AuditEntry, error)
}

type adminService struct {
	providers store.ProviderStore
	analytics store.AnalyticsStore
	audit     store.AuditStore
	cache     cache.AnalyticsCache
	timeFunc  func() time.Time
	logger    *slog.Logger
}

// NewAdminService creates an AdminService. A nil cache disables caching.
func NewAdminService(
	providers store.ProviderStore,
	analytics store.AnalyticsStore,
	audit store.AuditStore,
	analyticsCache cache.AnalyticsCache,
	logger *slog.Logger,
) AdminService {
	if providers == nil || analytics == nil || audit == nil {
		panic("admin service dependencies cannot be nil")
	}
	if analyticsCache == nil {
		analyticsCache = cache.NoopAnalyticsCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &adminService{
		providers: providers,
		analytics: analytics,
		audit:     audit,
		cache:     analyticsCache,
		timeFunc:  time.Now,
		logger:    logger.With(slog.String("component", "admin_service")),
	}
}

func (s *adminService) ListUnverified(ctx context.Context, p domain.Principal) ([]*domain.ProviderProfile, error) {
	if err := requireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	profiles, err := s.providers.ListUnverified(ctx)
	if err != nil {
		return nil, translateStoreError("list unverified providers", err)
	}
	return profiles, nil
}

func (s *adminService) Analytics(ctx context.Context, p domain.Principal, limit int) (*domain.Analytics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = domain.DefaultAnalyticsLimit
	}
	if limit < 1 || limit > domain.MaxAnalyticsLimit {
		return nil, domain.NewValidationError("limit", "must be between 1 and 100", nil)
	}

	// cache failures degrade to a recompute
	if cached, ok, err := s.cache.Get(ctx, limit); err != nil {
		log.Warn("analytics cache unavailable", slog.String("error", err.Error()))
	} else if ok {
		log.Debug("analytics served from cache", slog.Int("limit", limit))
		return cached, nil
	}

	result := &domain.Analytics{GeneratedAt: s.timeFunc().UTC()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.TopServices, err = s.analytics.TopServices(gctx, limit)
		return err
	})
	g.Go(func() error {
		var err error
		result.PopularPincodes, err = s.analytics.PopularPincodes(gctx, limit)
		return err
	})
	g.Go(func() error {
		var err error
		result.TotalBookings, err = s.analytics.CountBookings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to compute analytics", slog.String("error", err.Error()))
		return nil, translateStoreError("compute analytics", err)
	}

	if err := s.cache.Set(ctx, limit, result); err != nil {
		log.Warn("failed to cache analytics", slog.String("error", err.Error()))
	}
	return result, nil
}

func (s *adminService) AuditLog(ctx context.Context, p domain.Principal, limit int) ([]*domain.AuditEntry, error) {
	if err := requireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = DefaultAuditLimit
	}
	if limit < 1 || limit > MaxAuditLimit {
		return nil, domain.NewValidationError("limit", "must be between 1 and 500", nil)
	}
	entries, err := s.audit.ListRecent(ctx, limit)
	if err != nil {
		return nil, translateStoreError("list audit log", err)
	}
	return entries, nil
}
