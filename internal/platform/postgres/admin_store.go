package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/logger"
	"github.com/phrazzld/servicely-api/internal/store"
)

// rollupQueries group all bookings by a provider column. Counts include
// every status.
const (
	topServicesQuery = `
		SELECT p.services, COUNT(b.id) AS booking_count
		FROM bookings b
		JOIN provider_profiles p ON p.id = b.provider_id
		GROUP BY p.services
		ORDER BY booking_count DESC, p.services ASC
		LIMIT $1
	`
	popularPincodesQuery = `
		SELECT p.location_pincode, COUNT(b.id) AS booking_count
		FROM bookings b
		JOIN provider_profiles p ON p.id = b.provider_id
		GROUP BY p.location_pincode
		ORDER BY booking_count DESC, p.location_pincode ASC
		LIMIT $1
	`
)

// PostgresAdminStore implements store.AuditStore and store.AnalyticsStore.
type PostgresAdminStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAdminStore creates the PostgreSQL audit log and analytics reader.
func NewPostgresAdminStore(db store.DBTX, logger *slog.Logger) *PostgresAdminStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAdminStore{
		db:     db,
		logger: logger.With(slog.String("component", "admin_store")),
	}
}

var (
	_ store.AuditStore     = (*PostgresAdminStore)(nil)
	_ store.AnalyticsStore = (*PostgresAdminStore)(nil)
)

// ListRecent implements store.AuditStore.ListRecent
func (s *PostgresAdminStore) ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, admin_id, action, target_provider_id, target_user_id, created_at
		FROM admin_audit_log
		ORDER BY created_at DESC, id ASC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Error("failed to list audit log", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		var e domain.AuditEntry
		var action string
		var createdAt time.Time
		if err := rows.Scan(
			&e.ID,
			&e.AdminID,
			&action,
			&e.TargetProviderID,
			&e.TargetUserID,
			&createdAt,
		); err != nil {
			log.Error("failed to scan audit row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		e.Action = domain.AuditAction(action)
		e.CreatedAt = createdAt.UTC()
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating audit rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return entries, nil
}

// TopServices implements store.AnalyticsStore.TopServices
func (s *PostgresAdminStore) TopServices(ctx context.Context, limit int) ([]domain.CountEntry, error) {
	return s.rollup(ctx, "top_services", topServicesQuery, limit)
}

// PopularPincodes implements store.AnalyticsStore.PopularPincodes
func (s *PostgresAdminStore) PopularPincodes(ctx context.Context, limit int) ([]domain.CountEntry, error) {
	return s.rollup(ctx, "popular_pincodes", popularPincodesQuery, limit)
}

// CountBookings implements store.AnalyticsStore.CountBookings
func (s *PostgresAdminStore) CountBookings(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		log.Error("failed to count bookings", slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return total, nil
}

func (s *PostgresAdminStore) rollup(
	ctx context.Context,
	name string,
	query string,
	limit int,
) ([]domain.CountEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("rollup", name))

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Error("failed to run analytics rollup", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	entries := make([]domain.CountEntry, 0)
	for rows.Next() {
		var e domain.CountEntry
		if err := rows.Scan(&e.Key, &e.Count); err != nil {
			log.Error("failed to scan rollup row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}

// WithTx returns an admin store that reads inside tx.
func (s *PostgresAdminStore) WithTx(tx *sql.Tx) *PostgresAdminStore {
	return &PostgresAdminStore{db: tx, logger: s.logger}
}
