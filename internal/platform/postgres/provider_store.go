package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/store"
)

const providerColumns = `id, user_id, services, experience, location_pincode, contact_info,
		profile_picture, verified, rating_avg, rating_count, created_at, updated_at`

// providerOrderBy maps each supported sort to a fixed ORDER BY clause.
// Only these literals are ever interpolated into listing queries.
var providerOrderBy = map[domain.ProviderSort]string{
	domain.SortByRating:     "rating_avg DESC, id ASC",
	domain.SortByExperience: "experience DESC, id ASC",
}

// PostgresProviderStore implements the store.ProviderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProviderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProviderStore creates a new PostgreSQL implementation of the ProviderStore interface.
func NewPostgresProviderStore(db store.DBTX, logger *slog.Logger) *PostgresProviderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProviderStore{
		db:     db,
		logger: logger.With(slog.String("component", "provider_store")),
	}
}

// Ensure PostgresProviderStore implements store.ProviderStore interface
var _ store.ProviderStore = (*PostgresProviderStore)(nil)

// Create implements store.ProviderStore.Create
func (s *PostgresProviderStore) Create(ctx context.Context, profile *domain.ProviderProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("provider profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("provider_id", profile.ID.String()))
		return err
	}

	query := `
		INSERT INTO provider_profiles (
			id, user_id, services, experience, location_pincode, contact_info,
			profile_picture, verified, rating_avg, rating_count, rating_sum,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, 0, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.Services,
		profile.Experience,
		profile.LocationPincode,
		profile.ContactInfo,
		nullString(profile.ProfilePicture),
		profile.Verified,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		switch {
		case errors.Is(mapped, store.ErrProviderProfileExists):
			log.Warn("user already has a provider profile",
				slog.String("user_id", profile.UserID.String()))
		case errors.Is(mapped, store.ErrInvalidEntity):
			log.Warn("provider profile references a missing user",
				slog.String("error", err.Error()),
				slog.String("user_id", profile.UserID.String()))
		default:
			log.Error("failed to create provider profile",
				slog.String("error", err.Error()),
				slog.String("provider_id", profile.ID.String()))
		}
		return mapped
	}

	profile.RatingAvg = 0
	profile.RatingCount = 0

	log.Info("provider profile created",
		slog.String("provider_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// GetByID implements store.ProviderStore.GetByID
func (s *PostgresProviderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProviderProfile, error) {
	return s.getOne(ctx, "id", id)
}

// GetByUserID implements store.ProviderStore.GetByUserID
func (s *PostgresProviderStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ProviderProfile, error) {
	return s.getOne(ctx, "user_id", userID)
}

// getOne looks a profile up by a key column. column is always a literal
// supplied by this file.
func (s *PostgresProviderStore) getOne(
	ctx context.Context,
	column string,
	value uuid.UUID,
) (*domain.ProviderProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM provider_profiles WHERE %s = $1`, providerColumns, column)
	profile, err := scanProvider(s.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("provider profile not found",
				slog.String("by", column),
				slog.String("value", value.String()))
			return nil, store.ErrProviderNotFound
		}
		log.Error("failed to get provider profile",
			slog.String("error", err.Error()),
			slog.String("by", column),
			slog.String("value", value.String()))
		return nil, MapError(err)
	}

	return profile, nil
}

// ListVerified implements store.ProviderStore.ListVerified
func (s *PostgresProviderStore) ListVerified(
	ctx context.Context,
	filter domain.ProviderFilter,
) ([]*domain.ProviderProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	conditions := []string{"verified"}
	args := make([]any, 0, 4)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("services = $%d", len(args)))
	}
	if filter.Pincode != "" {
		args = append(args, filter.Pincode)
		conditions = append(conditions, fmt.Sprintf("location_pincode = $%d", len(args)))
	}
	args = append(args, filter.Limit, filter.Offset)

	query := fmt.Sprintf(
		`SELECT %s FROM provider_profiles WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		providerColumns,
		strings.Join(conditions, " AND "),
		providerOrderBy[filter.SortBy],
		len(args)-1,
		len(args),
	)

	profiles, err := s.queryProfiles(ctx, query, args...)
	if err != nil {
		log.Error("failed to list verified providers",
			slog.String("error", err.Error()),
			slog.String("category", filter.Category),
			slog.String("pincode", filter.Pincode))
		return nil, MapError(err)
	}

	log.Debug("listed verified providers", slog.Int("count", len(profiles)))
	return profiles, nil
}

// ListUnverified implements store.ProviderStore.ListUnverified
func (s *PostgresProviderStore) ListUnverified(ctx context.Context) ([]*domain.ProviderProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(
		`SELECT %s FROM provider_profiles WHERE NOT verified ORDER BY created_at DESC, id ASC`,
		providerColumns,
	)
	profiles, err := s.queryProfiles(ctx, query)
	if err != nil {
		log.Error("failed to list unverified providers", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return profiles, nil
}

// SetVerification implements store.ProviderStore.SetVerification
func (s *PostgresProviderStore) SetVerification(
	ctx context.Context,
	id uuid.UUID,
	approve bool,
	adminID uuid.UUID,
) (*domain.ProviderProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE provider_profiles
			SET verified = $2,
				updated_at = CASE WHEN verified = $2 THEN updated_at ELSE $3 END
			WHERE id = $1
			RETURNING %s
		),
		audit AS (
			INSERT INTO admin_audit_log (id, admin_id, action, target_provider_id, target_user_id, created_at)
			SELECT $4, $5, $6, u.id, u.user_id, $3 FROM updated u
		)
		SELECT %s FROM updated
	`, providerColumns, providerColumns)

	profile, err := scanProvider(s.db.QueryRowContext(
		ctx,
		query,
		id,
		approve,
		now,
		uuid.New(),
		adminID,
		string(domain.VerificationAction(approve)),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("verification target not found", slog.String("provider_id", id.String()))
			return nil, store.ErrProviderNotFound
		}
		log.Error("failed to set provider verification",
			slog.String("error", err.Error()),
			slog.String("provider_id", id.String()),
			slog.Bool("approve", approve))
		return nil, MapError(err)
	}

	log.Info("provider verification set",
		slog.String("provider_id", id.String()),
		slog.String("admin_id", adminID.String()),
		slog.Bool("verified", profile.Verified))
	return profile, nil
}

// WithTx implements store.ProviderStore.WithTx
func (s *PostgresProviderStore) WithTx(tx *sql.Tx) store.ProviderStore {
	return &PostgresProviderStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresProviderStore) queryProfiles(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.ProviderProfile, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	profiles := make([]*domain.ProviderProfile, 0)
	for rows.Next() {
		profile, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func scanProvider(row rowScanner) (*domain.ProviderProfile, error) {
	var p domain.ProviderProfile
	var picture sql.NullString
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Services,
		&p.Experience,
		&p.LocationPincode,
		&p.ContactInfo,
		&picture,
		&p.Verified,
		&p.RatingAvg,
		&p.RatingCount,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	p.ProfilePicture = picture.String
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
