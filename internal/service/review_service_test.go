package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/events"
	"github.com/phrazzld/servicely-api/internal/mocks"
	"github.com/phrazzld/servicely-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	svc       ReviewService
	reviews   *mocks.ReviewStore
	bookings  *mocks.BookingStore
	providers *mocks.ProviderStore
	emitter   *recordingEmitter
}

func newReviewFixture() reviewFixture {
	f := reviewFixture{
		reviews:   new(mocks.ReviewStore),
		bookings:  new(mocks.BookingStore),
		providers: new(mocks.ProviderStore),
		emitter:   &recordingEmitter{},
	}
	f.svc = NewReviewService(f.reviews, f.bookings, f.providers, f.emitter, nil)
	return f
}

func completedBooking(customerID uuid.UUID) *domain.Booking {
	return &domain.Booking{
		ID:             uuid.New(),
		CustomerID:     customerID,
		ProviderID:     uuid.New(),
		ProviderUserID: uuid.New(),
		DateTime:       fixedNow,
		Status:         domain.BookingStatusCompleted,
	}
}

func TestReviewService_Submit(t *testing.T) {
	ctx := context.Background()
	customer := principal(domain.RoleCustomer)

	t.Run("folds the rating into the aggregate", func(t *testing.T) {
		f := newReviewFixture()
		b := completedBooking(customer.UserID)
		f.bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil).Once()
		f.reviews.On("ExistsForBooking", mock.Anything, b.ID).Return(false, nil).Once()
		// one prior rating of 4, then a 3: average 3.5 over two
		f.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
			return r.BookingID == b.ID && r.ProviderID == b.ProviderID && r.Rating == 3 && r.Comment == "ok"
		})).Return(domain.RatingAggregate{Sum: 4, Count: 1}.Add(3), nil).Once()

		got, err := f.svc.Submit(ctx, customer, b.ID, 3, "  ok ")
		require.NoError(t, err)
		assert.InDelta(t, 3.5, got.RatingAvg, 1e-9)
		assert.Equal(t, 2, got.RatingCount)
		assert.Equal(t, []string{events.TypeReviewSubmitted}, f.emitter.types())
		f.reviews.AssertExpectations(t)
	})

	t.Run("not the booking's customer", func(t *testing.T) {
		f := newReviewFixture()
		b := completedBooking(uuid.New())
		f.bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil).Once()

		// ownership is checked before the rating
		_, err := f.svc.Submit(ctx, customer, b.ID, 9, "")
		assert.Equal(t, domain.ErrForbidden, err)
		f.reviews.AssertNotCalled(t, "ExistsForBooking", mock.Anything, mock.Anything)
	})

	t.Run("booking not completed", func(t *testing.T) {
		f := newReviewFixture()
		b := completedBooking(customer.UserID)
		b.Status = domain.BookingStatusPending
		f.bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil).Once()

		_, err := f.svc.Submit(ctx, customer, b.ID, 0, "")
		assert.Equal(t, domain.ErrInvalidState, err)
	})

	t.Run("already reviewed beats a bad rating", func(t *testing.T) {
		f := newReviewFixture()
		b := completedBooking(customer.UserID)
		f.bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil).Once()
		f.reviews.On("ExistsForBooking", mock.Anything, b.ID).Return(true, nil).Once()

		_, err := f.svc.Submit(ctx, customer, b.ID, 6, "")
		assert.Equal(t, domain.ErrDuplicateReview, err)
	})

	for _, rating := range []int{0, 6, -1} {
		t.Run("rating out of range", func(t *testing.T) {
			f := newReviewFixture()
			b := completedBooking(customer.UserID)
			f.bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil).Once()
			f.reviews.On("ExistsForBooking", mock.Anything, b.ID).Return(false, nil).Once()

			_, err := f.svc.Submit(ctx, customer, b.ID, rating, "")
			assert.Equal(t, domain.ErrInvalidRating, err)
			f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("concurrent duplicate caught by the store", func(t *testing.T) {
		f := newReviewFixture()
		b := completedBooking(customer.UserID)
		f.bookings.On("GetByID", mock.Anything, b.ID).Return(b, nil).Once()
		f.reviews.On("ExistsForBooking", mock.Anything, b.ID).Return(false, nil).Once()
		f.reviews.On("Create", mock.Anything, mock.Anything).Return(domain.RatingAggregate{}, store.ErrReviewExists).Once()

		_, err := f.svc.Submit(ctx, customer, b.ID, 5, "")
		assert.ErrorIs(t, err, domain.ErrDuplicateReview)
		assert.Empty(t, f.emitter.types())
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newReviewFixture()
		id := uuid.New()
		f.bookings.On("GetByID", mock.Anything, id).Return(nil, store.ErrBookingNotFound).Once()

		_, err := f.svc.Submit(ctx, customer, id, 5, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReviewService_ListForProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("verified provider", func(t *testing.T) {
		f := newReviewFixture()
		profile := verifiedProvider(uuid.New())
		reviews := []*domain.Review{{ID: uuid.New(), ProviderID: profile.ID, Rating: 5}}
		f.providers.On("GetByID", mock.Anything, profile.ID).Return(profile, nil).Once()
		f.reviews.On("ListForProvider", mock.Anything, profile.ID).Return(reviews, nil).Once()

		got, err := f.svc.ListForProvider(ctx, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, reviews, got)
	})

	t.Run("unverified provider still lists", func(t *testing.T) {
		f := newReviewFixture()
		profile := verifiedProvider(uuid.New())
		profile.Verified = false
		reviews := []*domain.Review{{ID: uuid.New(), ProviderID: profile.ID, Rating: 2}}
		f.providers.On("GetByID", mock.Anything, profile.ID).Return(profile, nil).Once()
		f.reviews.On("ListForProvider", mock.Anything, profile.ID).Return(reviews, nil).Once()

		got, err := f.svc.ListForProvider(ctx, profile.ID)
		require.NoError(t, err)
		assert.Equal(t, reviews, got)
	})

	t.Run("missing provider", func(t *testing.T) {
		f := newReviewFixture()
		id := uuid.New()
		f.providers.On("GetByID", mock.Anything, id).Return(nil, store.ErrProviderNotFound).Once()

		_, err := f.svc.ListForProvider(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.reviews.AssertNotCalled(t, "ListForProvider", mock.Anything, mock.Anything)
	})
}
