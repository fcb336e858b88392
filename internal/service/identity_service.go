package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/service/auth"
	"github.com/phrazzld/servicely-api/internal/store"
)

// RegisterInput carries a self-service sign-up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role // empty means customer
}

// Session is the result of a successful sign-up, login or refresh.
type Session struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// IdentityService authenticates users and issues sessions.
type IdentityService interface {
	// Register creates a customer or provider account and signs it in.
	// Returns ErrDuplicateEmail if the email is taken.
	Register(ctx context.Context, in RegisterInput) (*Session, error)

	// Login returns ErrInvalidCredentials for an unknown email or a wrong
	// password, without distinguishing the two.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Refresh exchanges a valid refresh token for a new session.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)

	// CurrentUser loads the caller's account.
	CurrentUser(ctx context.Context, p domain.Principal) (*domain.User, error)
}

type identityService struct {
	users         store.UserStore
	jwt           auth.JWTService
	passwords     auth.PasswordVerifier
	tokenLifetime time.Duration
	timeFunc      func() time.Time
	logger        *slog.Logger
}

// NewIdentityService creates an IdentityService.
func NewIdentityService(
	users store.UserStore,
	jwt auth.JWTService,
	passwords auth.PasswordVerifier,
	tokenLifetime time.Duration,
	logger *slog.Logger,
) IdentityService {
	if users == nil || jwt == nil || passwords == nil {
		panic("identity service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &identityService{
		users:         users,
		jwt:           jwt,
		passwords:     passwords,
		tokenLifetime: tokenLifetime,
		timeFunc:      time.Now,
		logger:        logger.With(slog.String("component", "identity_service")),
	}
}

func (s *identityService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	role := in.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !role.SelfAssignable() {
		return nil, domain.NewValidationError("role", "must be customer or provider", domain.ErrRoleNotSelfAssigned)
	}

	user, err := domain.NewUser(in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, store.ErrEmailExists) {
			log.Error("failed to register user", slog.String("error", err.Error()))
		}
		return nil, translateStoreError("register user", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return s.issue(ctx, user)
}

func (s *identityService) Login(ctx context.Context, email, password string) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.passwords.CompareMissing(password)
			log.Debug("login failed: unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		log.Error("failed to load user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", slog.String("user_id", user.ID.String()))
		return nil, domain.ErrInvalidCredentials
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return s.issue(ctx, user)
}

func (s *identityService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	// the account must still exist; its role is re-read rather than trusted
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return s.issue(ctx, user)
}

func (s *identityService) CurrentUser(ctx context.Context, p domain.Principal) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, translateStoreError("load current user", err)
	}
	return user, nil
}

func (s *identityService) issue(ctx context.Context, user *domain.User) (*Session, error) {
	now := s.timeFunc()
	access, err := s.jwt.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &Session{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(s.tokenLifetime).UTC(),
	}, nil
}
