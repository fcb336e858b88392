package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/events"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/store"
)

// RegisterProviderInput carries a provider's profile details.
type RegisterProviderInput struct {
	Services       string
	Experience     int
	Pincode        string
	ContactInfo    string
	ProfilePicture string
}

// ProviderService manages provider profiles and their verification.
type ProviderService interface {
	// Register creates the caller's profile, unverified with no ratings.
	// Only provider accounts may register; a second profile is ErrDuplicateProfile.
	Register(ctx context.Context, p domain.Principal, in RegisterProviderInput) (*domain.ProviderProfile, error)

	// List returns verified profiles matching the filter.
	List(ctx context.Context, filter domain.ProviderFilter) ([]*domain.ProviderProfile, error)

	// Get returns a profile the caller may see. Unverified profiles are
	// ErrNotFound to everyone but their owner and admins. p is nil for
	// anonymous callers.
	Get(ctx context.Context, p *domain.Principal, id uuid.UUID) (*domain.ProviderProfile, error)

	// GetByUserID returns the profile owned by the caller.
	GetByUserID(ctx context.Context, p domain.Principal) (*domain.ProviderProfile, error)

	// SetVerification approves or rejects a profile. Admin only; repeating
	// the current decision succeeds.
	SetVerification(ctx context.Context, p domain.Principal, id uuid.UUID, approve bool) (*domain.ProviderProfile, error)
}

type providerService struct {
	providers store.ProviderStore
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// NewProviderService creates a ProviderService. emitter may be nil.
func NewProviderService(
	providers store.ProviderStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) ProviderService {
	if providers == nil {
		panic("provider store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &providerService{
		providers: providers,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "provider_service")),
	}
}

func (s *providerService) Register(
	ctx context.Context,
	p domain.Principal,
	in RegisterProviderInput,
) (*domain.ProviderProfile, error) {
	if err := requireRole(p, domain.RoleProvider); err != nil {
		return nil, err
	}

	profile, err := domain.NewProviderProfile(
		p.UserID, in.Services, in.Experience, in.Pincode, in.ContactInfo, in.ProfilePicture,
	)
	if err != nil {
		return nil, err
	}

	if err := s.providers.Create(ctx, profile); err != nil {
		return nil, translateStoreError("register provider", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("provider registered",
		slog.String("provider_id", profile.ID.String()),
		slog.String("user_id", p.UserID.String()))
	return profile, nil
}

func (s *providerService) List(
	ctx context.Context,
	filter domain.ProviderFilter,
) ([]*domain.ProviderProfile, error) {
	filter, err := filter.Normalize()
	if err != nil {
		return nil, err
	}
	profiles, err := s.providers.ListVerified(ctx, filter)
	if err != nil {
		return nil, translateStoreError("list providers", err)
	}
	return profiles, nil
}

func (s *providerService) Get(
	ctx context.Context,
	p *domain.Principal,
	id uuid.UUID,
) (*domain.ProviderProfile, error) {
	profile, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError("get provider", err)
	}

	var caller uuid.UUID
	var role domain.Role
	if p != nil {
		caller, role = p.UserID, p.Role
	}
	if !profile.VisibleTo(caller, role) {
		// indistinguishable from a missing profile
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (s *providerService) GetByUserID(ctx context.Context, p domain.Principal) (*domain.ProviderProfile, error) {
	profile, err := s.providers.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, translateStoreError("get provider by user", err)
	}
	return profile, nil
}

func (s *providerService) SetVerification(
	ctx context.Context,
	p domain.Principal,
	id uuid.UUID,
	approve bool,
) (*domain.ProviderProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireRole(p, domain.RoleAdmin); err != nil {
		log.Warn("non-admin attempted provider verification",
			slog.String("user_id", p.UserID.String()),
			slog.String("provider_id", id.String()))
		return nil, err
	}

	profile, err := s.providers.SetVerification(ctx, id, approve, p.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to set verification", slog.String("error", err.Error()))
		}
		return nil, translateStoreError("set verification", err)
	}

	if err := events.Emit(ctx, s.emitter, events.TypeProviderVerificationChanged, events.VerificationPayload{
		ProviderID: profile.ID,
		AdminID:    p.UserID,
		Verified:   profile.Verified,
	}); err != nil {
		log.Warn("failed to emit verification event", slog.String("error", err.Error()))
	}

	return profile, nil
}
