package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/events"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/store"
)

// SubmittedReview is a stored review with the provider's updated aggregate.
type SubmittedReview struct {
	Review      *domain.Review
	RatingAvg   float64
	RatingCount int
}

// ReviewService records reviews and maintains provider ratings.
type ReviewService interface {
	// Submit reviews a completed booking. Checks run in order: the booking
	// must exist, belong to the caller, be completed, not yet be reviewed,
	// and the rating must be within 1..5.
	Submit(
		ctx context.Context,
		p domain.Principal,
		bookingID uuid.UUID,
		rating int,
		comment string,
	) (*SubmittedReview, error)

	// ListForProvider returns a provider's reviews, newest first. Any existing
	// provider qualifies, verified or not.
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Review, error)
}

type reviewService struct {
	reviews   store.ReviewStore
	bookings  store.BookingStore
	providers store.ProviderStore
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// NewReviewService creates a ReviewService. emitter may be nil.
func NewReviewService(
	reviews store.ReviewStore,
	bookings store.BookingStore,
	providers store.ProviderStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) ReviewService {
	if reviews == nil || bookings == nil || providers == nil {
		panic("review service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &reviewService{
		reviews:   reviews,
		bookings:  bookings,
		providers: providers,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "review_service")),
	}
}

func (s *reviewService) Submit(
	ctx context.Context,
	p domain.Principal,
	bookingID uuid.UUID,
	rating int,
	comment string,
) (*SubmittedReview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("booking_id", bookingID.String()))

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, translateStoreError("load booking", err)
	}
	if booking.CustomerID != p.UserID {
		return nil, domain.ErrForbidden
	}
	if booking.Status != domain.BookingStatusCompleted {
		return nil, domain.ErrInvalidState
	}

	exists, err := s.reviews.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return nil, translateStoreError("check existing review", err)
	}
	if exists {
		return nil, domain.ErrDuplicateReview
	}

	if err := domain.ValidateRating(rating); err != nil {
		return nil, err
	}

	review, err := domain.NewReview(booking, rating, comment)
	if err != nil {
		return nil, err
	}

	// the store re-checks eligibility and uniqueness inside the insert
	agg, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, translateStoreError("create review", err)
	}

	result := &SubmittedReview{
		Review:      review,
		RatingAvg:   agg.Average(),
		RatingCount: agg.Count,
	}

	log.Info("review submitted",
		slog.String("review_id", review.ID.String()),
		slog.String("provider_id", review.ProviderID.String()),
		slog.Int("rating", rating))

	if err := events.Emit(ctx, s.emitter, events.TypeReviewSubmitted, events.ReviewPayload{
		ReviewID:    review.ID,
		BookingID:   review.BookingID,
		ProviderID:  review.ProviderID,
		Rating:      review.Rating,
		RatingAvg:   result.RatingAvg,
		RatingCount: result.RatingCount,
	}); err != nil {
		log.Warn("failed to emit review event", slog.String("error", err.Error()))
	}

	return result, nil
}

func (s *reviewService) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Review, error) {
	if _, err := s.providers.GetByID(ctx, providerID); err != nil {
		return nil, translateStoreError("get provider", err)
	}

	reviews, err := s.reviews.ListForProvider(ctx, providerID)
	if err != nil {
		return nil, translateStoreError("list reviews", err)
	}
	return reviews, nil
}
