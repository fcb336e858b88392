package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/config"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// DefaultJWTConfig returns an auth configuration suitable for tests.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
		BcryptCost:                  4,
	}
}

// NewTestJWTService creates a JWT service with a fixed secret, access token
// lifetime and clock. The refresh lifetime is 24 times the access lifetime.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:           []byte(secret),
		tokenLifetime:        lifetime,
		refreshTokenLifetime: 24 * lifetime,
		timeFunc:             timeFunc,
		clockSkew:            2 * time.Minute,
	}
}

// RequireTestJWTService creates a JWT service from DefaultJWTConfig.
func RequireTestJWTService(t *testing.T) JWTService {
	t.Helper()
	svc, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// AuthHeaderForTesting returns a "Bearer <token>" header value for the user.
func AuthHeaderForTesting(t *testing.T, svc JWTService, userID uuid.UUID, role domain.Role) string {
	t.Helper()
	token, err := svc.GenerateToken(context.Background(), userID, role)
	require.NoError(t, err, "Failed to generate auth header")
	return "Bearer " + token
}
