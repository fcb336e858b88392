package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/servicely-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Constraint names from the migrations, used to translate unique violations
// into entity-specific store errors.
const (
	constraintUserEmail       = "users_email_key"
	constraintProviderUser    = "provider_profiles_user_id_key"
	constraintBookingSlot     = "bookings_customer_provider_slot_key"
	constraintReviewBookingID = "reviews_booking_id_key"
)

// uniqueConstraintErrors maps a unique constraint to the store error callers match on.
var uniqueConstraintErrors = map[string]error{
	constraintUserEmail:       store.ErrEmailExists,
	constraintProviderUser:    store.ErrProviderProfileExists,
	constraintBookingSlot:     store.ErrBookingExists,
	constraintReviewBookingID: store.ErrReviewExists,
}

// MapError maps a database error to a store error. The driver error is not
// wrapped so that constraint names, SQL and values stay out of messages that
// may reach a client; callers log the original before mapping.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if specific, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
				return specific
			}
			return store.ErrDuplicate
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: referenced entity does not exist", store.ErrInvalidEntity)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation", store.ErrInvalidEntity)
		case notNullViolationCode:
			return fmt.Errorf("%w: missing required value", store.ErrInvalidEntity)
		}
	}

	return err
}
