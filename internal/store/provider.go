package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
)

// ProviderStore defines the interface for provider profile persistence.
type ProviderStore interface {
	// Create saves a new provider profile.
	// Returns ErrProviderProfileExists if the user already has a profile.
	// Returns ErrInvalidEntity if the user does not exist.
	Create(ctx context.Context, profile *domain.ProviderProfile) error

	// GetByID retrieves a profile regardless of verification status.
	// Returns ErrProviderNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProviderProfile, error)

	// GetByUserID retrieves the profile owned by userID.
	// Returns ErrProviderNotFound if the user has no profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.ProviderProfile, error)

	// ListVerified returns verified profiles matching the filter, in the
	// filter's order with id ascending as the tie-break.
	// Returns an empty slice if nothing matches.
	ListVerified(ctx context.Context, filter domain.ProviderFilter) ([]*domain.ProviderProfile, error)

	// ListUnverified returns all unverified profiles, newest first.
	ListUnverified(ctx context.Context) ([]*domain.ProviderProfile, error)

	// SetVerification sets the verified flag and appends an audit entry for
	// adminID in the same statement. Re-applying the current value succeeds.
	// Returns ErrProviderNotFound if the profile does not exist.
	SetVerification(
		ctx context.Context,
		id uuid.UUID,
		approve bool,
		adminID uuid.UUID,
	) (*domain.ProviderProfile, error)

	// WithTx returns a ProviderStore that runs its queries in tx.
	WithTx(tx *sql.Tx) ProviderStore
}
