package postgres_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/servicely-api/internal/platform/postgres"
	"github.com/phrazzld/servicely-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "duplicate key value violates unique constraint",
		Detail:         "Key (email)=(jane@example.com) already exists.",
		SchemaName:     "public",
		TableName:      "test_table",
		ConstraintName: constraint,
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"email taken", newPgError("23505", "users_email_key"), store.ErrEmailExists},
		{"second provider profile", newPgError("23505", "provider_profiles_user_id_key"), store.ErrProviderProfileExists},
		{"booking slot taken", newPgError("23505", "bookings_customer_provider_slot_key"), store.ErrBookingExists},
		{"booking reviewed", newPgError("23505", "reviews_booking_id_key"), store.ErrReviewExists},
		{"unknown unique", newPgError("23505", "something_key"), store.ErrDuplicate},
		{"foreign key", newPgError("23503", "bookings_provider_id_fkey"), store.ErrInvalidEntity},
		{"check", newPgError("23514", "reviews_rating_check"), store.ErrInvalidEntity},
		{"not null", newPgError("23502", ""), store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_DoesNotLeakDetails(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"23505", "23503", "23514", "23502"} {
		mapped := postgres.MapError(newPgError(code, "users_email_key"))
		require.Error(t, mapped)
		assert.NotContains(t, mapped.Error(), "jane@example.com")
		assert.NotContains(t, mapped.Error(), "users_email_key")
		assert.NotContains(t, mapped.Error(), "test_table")
	}
}

func TestMapError_PassesThroughUnknown(t *testing.T) {
	t.Parallel()

	original := errors.New("connection reset")
	assert.Same(t, original, postgres.MapError(original))
}
