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

// PostgresBookingStore implements the store.BookingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookingStore creates a new PostgreSQL implementation of the BookingStore interface.
func NewPostgresBookingStore(db store.DBTX, logger *slog.Logger) *PostgresBookingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookingStore{
		db:     db,
		logger: logger.With(slog.String("component", "booking_store")),
	}
}

// Ensure PostgresBookingStore implements store.BookingStore interface
var _ store.BookingStore = (*PostgresBookingStore)(nil)

// Create implements store.BookingStore.Create
//
// The verified check and the insert are one statement, so a provider that is
// unverified between a caller's read and this write cannot be booked.
func (s *PostgresBookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("booking_id", booking.ID.String()),
		slog.String("provider_id", booking.ProviderID.String()))

	if err := booking.Validate(); err != nil {
		log.Warn("booking validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		WITH inserted AS (
			INSERT INTO bookings (id, customer_id, provider_id, date_time, status, created_at, updated_at)
			SELECT $1, $2, p.id, $4, $5, $6, $7
			FROM provider_profiles p
			WHERE p.id = $3 AND p.verified
			RETURNING id
		)
		SELECT p.user_id
		FROM inserted
		JOIN provider_profiles p ON p.id = $3
	`
	var providerUserID uuid.UUID
	err := s.db.QueryRowContext(
		ctx,
		query,
		booking.ID,
		booking.CustomerID,
		booking.ProviderID,
		booking.DateTime,
		string(booking.Status),
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&providerUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.classifyGatedInsert(ctx, log, booking.ProviderID)
		}
		mapped := MapError(err)
		switch {
		case errors.Is(mapped, store.ErrBookingExists):
			log.Warn("booking slot already taken",
				slog.String("customer_id", booking.CustomerID.String()),
				slog.Time("date_time", booking.DateTime))
		case errors.Is(mapped, store.ErrInvalidEntity):
			log.Warn("booking references a missing entity", slog.String("error", err.Error()))
		default:
			log.Error("failed to create booking", slog.String("error", err.Error()))
		}
		return mapped
	}

	booking.ProviderUserID = providerUserID
	log.Info("booking created",
		slog.String("customer_id", booking.CustomerID.String()),
		slog.Time("date_time", booking.DateTime))
	return nil
}

// classifyGatedInsert explains why the gated insert wrote nothing.
func (s *PostgresBookingStore) classifyGatedInsert(
	ctx context.Context,
	log *slog.Logger,
	providerID uuid.UUID,
) error {
	var verified bool
	err := s.db.QueryRowContext(ctx,
		`SELECT verified FROM provider_profiles WHERE id = $1`, providerID,
	).Scan(&verified)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Warn("booking rejected: provider not found")
		return store.ErrProviderNotFound
	case err != nil:
		log.Error("failed to classify rejected booking", slog.String("error", err.Error()))
		return MapError(err)
	case !verified:
		log.Warn("booking rejected: provider not verified")
		return store.ErrProviderNotVerified
	}
	// verified again by the time we looked; report it as a lost race
	log.Warn("booking rejected: provider verification changed concurrently")
	return store.ErrConflict
}

// GetByID implements store.BookingStore.GetByID
func (s *PostgresBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT b.id, b.customer_id, b.provider_id, p.user_id, b.date_time, b.status,
			b.created_at, b.updated_at
		FROM bookings b
		JOIN provider_profiles p ON p.id = b.provider_id
		WHERE b.id = $1
	`
	booking, err := scanBooking(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("booking not found", slog.String("booking_id", id.String()))
			return nil, store.ErrBookingNotFound
		}
		log.Error("failed to get booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", id.String()))
		return nil, MapError(err)
	}

	return booking, nil
}

// UpdateStatus implements store.BookingStore.UpdateStatus
func (s *PostgresBookingStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	from domain.BookingStatus,
	to domain.BookingStatus,
) (*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("booking_id", id.String()),
		slog.String("from", string(from)),
		slog.String("to", string(to)))

	query := `
		UPDATE bookings b
		SET status = $3, updated_at = $4
		FROM provider_profiles p
		WHERE b.id = $1 AND b.status = $2 AND p.id = b.provider_id
		RETURNING b.id, b.customer_id, b.provider_id, p.user_id, b.date_time, b.status,
			b.created_at, b.updated_at
	`
	booking, err := scanBooking(s.db.QueryRowContext(
		ctx, query, id, string(from), string(to), time.Now().UTC(),
	))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("failed to update booking status", slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			log.Error("failed to check booking existence", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		if !exists {
			log.Debug("booking not found")
			return nil, store.ErrBookingNotFound
		}
		log.Warn("booking status changed concurrently")
		return nil, store.ErrConflict
	}

	log.Info("booking status updated")
	return booking, nil
}

// ListForUser implements store.BookingStore.ListForUser
func (s *PostgresBookingStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT b.id, b.customer_id, b.provider_id, p.user_id, b.date_time, b.status,
			b.created_at, b.updated_at
		FROM bookings b
		JOIN provider_profiles p ON p.id = b.provider_id
		WHERE b.customer_id = $1 OR p.user_id = $1
		ORDER BY b.date_time DESC, b.id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list bookings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			log.Error("failed to scan booking row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating booking rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("listed bookings",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(bookings)))
	return bookings, nil
}

// WithTx implements store.BookingStore.WithTx
func (s *PostgresBookingStore) WithTx(tx *sql.Tx) store.BookingStore {
	return &PostgresBookingStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var status string
	var dateTime, createdAt, updatedAt time.Time
	if err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.ProviderID,
		&b.ProviderUserID,
		&dateTime,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	b.DateTime = dateTime.UTC()
	b.CreatedAt = createdAt.UTC()
	b.UpdatedAt = updatedAt.UTC()
	return &b, nil
}
