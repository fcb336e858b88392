package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/mocks"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeed_EmptyDatabase(t *testing.T) {
	t.Parallel()

	users := new(mocks.UserStore)
	providers := new(mocks.ProviderStore)

	users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, store.ErrUserNotFound)
	var created []*domain.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = append(created, args.Get(1).(*domain.User)) }).
		Return(nil)
	providers.On("GetByUserID", mock.Anything, mock.Anything).Return(nil, store.ErrProviderNotFound)
	var profiles []*domain.ProviderProfile
	providers.On("Create", mock.Anything, mock.AnythingOfType("*domain.ProviderProfile")).
		Run(func(args mock.Arguments) { profiles = append(profiles, args.Get(1).(*domain.ProviderProfile)) }).
		Return(nil)

	require.NoError(t, seed(context.Background(), users, providers, quietLogger()))

	roles := map[string]domain.Role{}
	for _, u := range created {
		roles[u.Email] = u.Role
	}
	assert.Equal(t, map[string]domain.Role{
		"admin@example.com":    domain.RoleAdmin,
		"jane@example.com":     domain.RoleCustomer,
		"john@plumber.com":     domain.RoleProvider,
		"mike@electrician.com": domain.RoleProvider,
		"alice@painter.com":    domain.RoleProvider,
	}, roles)

	require.Len(t, profiles, 3)
	got := make([]string, 0, len(profiles))
	for _, p := range profiles {
		assert.True(t, p.Verified)
		assert.Zero(t, p.RatingCount)
		got = append(got, fmt.Sprintf("%s/%s", p.Services, p.LocationPincode))
	}
	assert.Equal(t, []string{"Plumber/110001", "Electrician/110002", "Painter/110001"}, got)
}

func TestSeed_AlreadySeeded(t *testing.T) {
	t.Parallel()

	users := new(mocks.UserStore)
	providers := new(mocks.ProviderStore)

	users.On("GetByEmail", mock.Anything, mock.Anything).Return(&domain.User{ID: uuid.New()}, nil)
	providers.On("GetByUserID", mock.Anything, mock.Anything).Return(&domain.ProviderProfile{ID: uuid.New()}, nil)

	require.NoError(t, seed(context.Background(), users, providers, quietLogger()))

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	providers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeed_LookupFailure(t *testing.T) {
	t.Parallel()

	users := new(mocks.UserStore)
	providers := new(mocks.ProviderStore)
	dbErr := errors.New("connection reset")
	users.On("GetByEmail", mock.Anything, "admin@example.com").Return(nil, dbErr)

	err := seed(context.Background(), users, providers, quietLogger())

	require.ErrorIs(t, err, dbErr)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func quietLogger() *slog.Logger {
	l, _ := logger.NewTestLogger()
	return l
}
