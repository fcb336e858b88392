// Package servicemocks provides testify mocks for the service interfaces,
// used by the HTTP handler tests. They live apart from package mocks so
// that tests inside package service can import the store mocks.
package servicemocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// IdentityService mocks service.IdentityService.
type IdentityService struct {
	mock.Mock
}

var _ service.IdentityService = (*IdentityService)(nil)

func (m *IdentityService) Register(ctx context.Context, in service.RegisterInput) (*service.Session, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(*service.Session)
	return s, args.Error(1)
}

func (m *IdentityService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*service.Session)
	return s, args.Error(1)
}

func (m *IdentityService) Refresh(ctx context.Context, refreshToken string) (*service.Session, error) {
	args := m.Called(ctx, refreshToken)
	s, _ := args.Get(0).(*service.Session)
	return s, args.Error(1)
}

func (m *IdentityService) CurrentUser(ctx context.Context, p domain.Principal) (*domain.User, error) {
	args := m.Called(ctx, p)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

// ProviderService mocks service.ProviderService.
type ProviderService struct {
	mock.Mock
}

var _ service.ProviderService = (*ProviderService)(nil)

func (m *ProviderService) Register(
	ctx context.Context,
	p domain.Principal,
	in service.RegisterProviderInput,
) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, p, in)
	profile, _ := args.Get(0).(*domain.ProviderProfile)
	return profile, args.Error(1)
}

func (m *ProviderService) List(ctx context.Context, filter domain.ProviderFilter) ([]*domain.ProviderProfile, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.ProviderProfile)
	return list, args.Error(1)
}

func (m *ProviderService) Get(ctx context.Context, p *domain.Principal, id uuid.UUID) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, p, id)
	profile, _ := args.Get(0).(*domain.ProviderProfile)
	return profile, args.Error(1)
}

func (m *ProviderService) GetByUserID(ctx context.Context, p domain.Principal) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, p)
	profile, _ := args.Get(0).(*domain.ProviderProfile)
	return profile, args.Error(1)
}

func (m *ProviderService) SetVerification(
	ctx context.Context,
	p domain.Principal,
	id uuid.UUID,
	approve bool,
) (*domain.ProviderProfile, error) {
	args := m.Called(ctx, p, id, approve)
	profile, _ := args.Get(0).(*domain.ProviderProfile)
	return profile, args.Error(1)
}

// BookingService mocks service.BookingService.
type BookingService struct {
	mock.Mock
}

var _ service.BookingService = (*BookingService)(nil)

func (m *BookingService) Create(
	ctx context.Context,
	p domain.Principal,
	providerID uuid.UUID,
	dateTime time.Time,
) (*domain.Booking, error) {
	args := m.Called(ctx, p, providerID, dateTime)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *BookingService) UpdateStatus(
	ctx context.Context,
	p domain.Principal,
	bookingID uuid.UUID,
	next domain.BookingStatus,
) (*domain.Booking, error) {
	args := m.Called(ctx, p, bookingID, next)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *BookingService) ListForUser(ctx context.Context, p domain.Principal) ([]*domain.Booking, error) {
	args := m.Called(ctx, p)
	list, _ := args.Get(0).([]*domain.Booking)
	return list, args.Error(1)
}

// ReviewService mocks service.ReviewService.
type ReviewService struct {
	mock.Mock
}

var _ service.ReviewService = (*ReviewService)(nil)

func (m *ReviewService) Submit(
	ctx context.Context,
	p domain.Principal,
	bookingID uuid.UUID,
	rating int,
	comment string,
) (*service.SubmittedReview, error) {
	args := m.Called(ctx, p, bookingID, rating, comment)
	r, _ := args.Get(0).(*service.SubmittedReview)
	return r, args.Error(1)
}

func (m *ReviewService) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Review, error) {
	args := m.Called(ctx, providerID)
	list, _ := args.Get(0).([]*domain.Review)
	return list, args.Error(1)
}

// AdminService mocks service.AdminService.
type AdminService struct {
	mock.Mock
}

var _ service.AdminService = (*AdminService)(nil)

func (m *AdminService) ListUnverified(ctx context.Context, p domain.Principal) ([]*domain.ProviderProfile, error) {
	args := m.Called(ctx, p)
	list, _ := args.Get(0).([]*domain.ProviderProfile)
	return list, args.Error(1)
}

func (m *AdminService) Analytics(ctx context.Context, p domain.Principal, limit int) (*domain.Analytics, error) {
	args := m.Called(ctx, p, limit)
	a, _ := args.Get(0).(*domain.Analytics)
	return a, args.Error(1)
}

func (m *AdminService) AuditLog(ctx context.Context, p domain.Principal, limit int) ([]*domain.AuditEntry, error) {
	args := m.Called(ctx, p, limit)
	list, _ := args.Get(0).([]*domain.AuditEntry)
	return list, args.Error(1)
}
