package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// UserStore mocks store.UserStore.
type UserStore struct {
	mock.Mock
}

var _ store.UserStore = (*UserStore)(nil)

func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

// WithTx returns the mock itself.
func (m *UserStore) WithTx(*sql.Tx) store.UserStore { return m }

// ProviderStore mocks store.ProviderStore.
type ProviderStore struct {
	mock.Mock
}

var _ store.ProviderStore = (*ProviderStore)(nil)

func (m *ProviderStore) Create(ctx context.Context, profile *domain.ProviderProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProviderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.ProviderProfile)
	return p, args.Error(1)
}

func (m *ProviderStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*domain.ProviderProfile)
	return p, args.Error(1)
}

func (m *ProviderStore) ListVerified(
	ctx context.Context,
	filter domain.ProviderFilter,
) ([]*domain.ProviderProfile, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.ProviderProfile)
	return list, args.Error(1)
}

func (m *ProviderStore) ListUnverified(ctx context.Context) ([]*domain.ProviderProfile, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*domain.ProviderProfile)
	return list, args.Error(1)
}

func (m *ProviderStore) SetVerification(
	ctx context.Context,
	id uuid.UUID,
	approve bool,
	adminID uuid.UUID,
) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, id, approve, adminID)
	p, _ := args.Get(0).(*domain.ProviderProfile)
	return p, args.Error(1)
}

// WithTx returns the mock itself.
func (m *ProviderStore) WithTx(*sql.Tx) store.ProviderStore { return m }

// BookingStore mocks store.BookingStore.
type BookingStore struct {
	mock.Mock
}

var _ store.BookingStore = (*BookingStore)(nil)

func (m *BookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *BookingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *BookingStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	from domain.BookingStatus,
	to domain.BookingStatus,
) (*domain.Booking, error) {
	args := m.Called(ctx, id, from, to)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *BookingStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*domain.Booking)
	return list, args.Error(1)
}

// WithTx returns the mock itself.
func (m *BookingStore) WithTx(*sql.Tx) store.BookingStore { return m }

// ReviewStore mocks store.ReviewStore.
type ReviewStore struct {
	mock.Mock
}

var _ store.ReviewStore = (*ReviewStore)(nil)

func (m *ReviewStore) Create(ctx context.Context, review *domain.Review) (domain.RatingAggregate, error) {
	args := m.Called(ctx, review)
	agg, _ := args.Get(0).(domain.RatingAggregate)
	return agg, args.Error(1)
}

func (m *ReviewStore) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewStore) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Review, error) {
	args := m.Called(ctx, providerID)
	list, _ := args.Get(0).([]*domain.Review)
	return list, args.Error(1)
}

// WithTx returns the mock itself.
func (m *ReviewStore) WithTx(*sql.Tx) store.ReviewStore { return m }

// AdminStore mocks store.AuditStore and store.AnalyticsStore.
type AdminStore struct {
	mock.Mock
}

var (
	_ store.AuditStore     = (*AdminStore)(nil)
	_ store.AnalyticsStore = (*AdminStore)(nil)
)

func (m *AdminStore) ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]*domain.AuditEntry)
	return list, args.Error(1)
}

func (m *AdminStore) TopServices(ctx context.Context, limit int) ([]domain.CountEntry, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]domain.CountEntry)
	return list, args.Error(1)
}

func (m *AdminStore) PopularPincodes(ctx context.Context, limit int) ([]domain.CountEntry, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]domain.CountEntry)
	return list, args.Error(1)
}

func (m *AdminStore) CountBookings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}
