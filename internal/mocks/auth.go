package mocks

import (
	"context"

	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/cache"
	"github.com/phrazzld/servicely-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// PasswordVerifier mocks auth.PasswordVerifier.
type PasswordVerifier struct {
	mock.Mock
}

var _ auth.PasswordVerifier = (*PasswordVerifier)(nil)

func (m *PasswordVerifier) Compare(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}

func (m *PasswordVerifier) CompareMissing(password string) {
	m.Called(password)
}

// AnalyticsCache mocks cache.AnalyticsCache.
type AnalyticsCache struct {
	mock.Mock
}

var _ cache.AnalyticsCache = (*AnalyticsCache)(nil)

func (m *AnalyticsCache) Get(ctx context.Context, limit int) (*domain.Analytics, bool, error) {
	args := m.Called(ctx, limit)
	a, _ := args.Get(0).(*domain.Analytics)
	return a, args.Bool(1), args.Error(2)
}

func (m *AnalyticsCache) Set(ctx context.Context, limit int, analytics *domain.Analytics) error {
	return m.Called(ctx, limit, analytics).Error(0)
}

func (m *AnalyticsCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
