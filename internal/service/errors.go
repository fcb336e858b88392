package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/store"
)

// storeErrorMapping translates store errors into the domain taxonomy the API
// layer maps to status codes. Order matters: specific errors first.
var storeErrorMapping = []struct {
	storeErr  error
	domainErr error
}{
	{store.ErrEmailExists, domain.ErrDuplicateEmail},
	{store.ErrProviderProfileExists, domain.ErrDuplicateProfile},
	{store.ErrBookingExists, domain.ErrConflict},
	{store.ErrReviewExists, domain.ErrDuplicateReview},
	{store.ErrProviderNotVerified, domain.ErrProviderUnverified},
	{store.ErrBookingNotReviewable, domain.ErrInvalidState},
	{store.ErrConflict, domain.ErrConflict},
	{store.ErrNotFound, domain.ErrNotFound},
	{store.ErrInvalidEntity, domain.ErrValidation},
}

// translateStoreError wraps err with its domain counterpart so that both
// errors.Is(err, domain.X) and errors.Is(err, store.Y) hold. Errors without a
// mapping are wrapped with op only.
func translateStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	for _, m := range storeErrorMapping {
		if errors.Is(err, m.storeErr) {
			return fmt.Errorf("%w: %s: %w", m.domainErr, op, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// requireRole returns ErrForbidden unless the principal has one of roles.
func requireRole(p domain.Principal, roles ...domain.Role) error {
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}
