package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// Create implements store.ReviewStore.Create
//
// The eligibility check, the insert and the aggregate update run as one
// statement. The UPDATE reads the row it locks, so concurrent reviews of the
// same provider serialize on the profile row and no rating is lost.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) (domain.RatingAggregate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("review_id", review.ID.String()),
		slog.String("booking_id", review.BookingID.String()))

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create", slog.String("error", err.Error()))
		return domain.RatingAggregate{}, err
	}

	query := `
		WITH eligible AS (
			SELECT id, customer_id, provider_id
			FROM bookings
			WHERE id = $2 AND status = 'completed' AND customer_id = $3
		),
		inserted AS (
			INSERT INTO reviews (id, booking_id, customer_id, provider_id, rating, comment, created_at)
			SELECT $1, e.id, e.customer_id, e.provider_id, $4, $5, $6
			FROM eligible e
			RETURNING provider_id, rating
		)
		UPDATE provider_profiles p
		SET rating_count = p.rating_count + 1,
			rating_sum = p.rating_sum + i.rating,
			rating_avg = (p.rating_sum + i.rating)::double precision / (p.rating_count + 1),
			updated_at = $6
		FROM inserted i
		WHERE p.id = i.provider_id
		RETURNING p.id, p.rating_sum, p.rating_count
	`
	var agg domain.RatingAggregate
	var providerID uuid.UUID
	err := s.db.QueryRowContext(
		ctx,
		query,
		review.ID,
		review.BookingID,
		review.CustomerID,
		review.Rating,
		nullString(review.Comment),
		review.CreatedAt,
	).Scan(&providerID, &agg.Sum, &agg.Count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("review rejected: booking not reviewable by this customer",
				slog.String("customer_id", review.CustomerID.String()))
			return domain.RatingAggregate{}, store.ErrBookingNotReviewable
		}
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrReviewExists) {
			log.Warn("booking already reviewed")
		} else {
			log.Error("failed to create review", slog.String("error", err.Error()))
		}
		return domain.RatingAggregate{}, mapped
	}

	review.ProviderID = providerID
	log.Info("review created",
		slog.String("provider_id", providerID.String()),
		slog.Int("rating", review.Rating),
		slog.Int("rating_count", agg.Count))
	return agg, nil
}

// ExistsForBooking implements store.ReviewStore.ExistsForBooking
func (s *PostgresReviewStore) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id = $1)`, bookingID,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check review existence",
			slog.String("error", err.Error()),
			slog.String("booking_id", bookingID.String()))
		return false, MapError(err)
	}

	return exists, nil
}

// ListForProvider implements store.ReviewStore.ListForProvider
func (s *PostgresReviewStore) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, booking_id, customer_id, provider_id, rating, comment, created_at
		FROM reviews
		WHERE provider_id = $1
		ORDER BY created_at DESC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, providerID)
	if err != nil {
		log.Error("failed to list reviews",
			slog.String("error", err.Error()),
			slog.String("provider_id", providerID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var r domain.Review
		var comment sql.NullString
		var createdAt time.Time
		if err := rows.Scan(
			&r.ID,
			&r.BookingID,
			&r.CustomerID,
			&r.ProviderID,
			&r.Rating,
			&comment,
			&createdAt,
		); err != nil {
			log.Error("failed to scan review row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		r.Comment = comment.String
		r.CreatedAt = createdAt.UTC()
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating review rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return reviews, nil
}

// WithTx implements store.ReviewStore.WithTx
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{
		db:     tx,
		logger: s.logger,
	}
}
