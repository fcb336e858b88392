package store

import (
	"context"

	"github.com/phrazzld/servicely-api/internal/domain"
)

// AuditStore reads the admin audit log. Entries are written by
// ProviderStore.SetVerification.
type AuditStore interface {
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

// AnalyticsStore computes read-only rollups over all bookings.
type AnalyticsStore interface {
	// TopServices returns booking counts per provider service, count
	// descending then service ascending, at most limit rows.
	TopServices(ctx context.Context, limit int) ([]domain.CountEntry, error)

	// PopularPincodes returns booking counts per provider pincode, count
	// descending then pincode ascending, at most limit rows.
	PopularPincodes(ctx context.Context, limit int) ([]domain.CountEntry, error)

	// CountBookings returns the total number of bookings.
	CountBookings(ctx context.Context) (int64, error)
}
