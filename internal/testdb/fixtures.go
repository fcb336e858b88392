//go:build integration

package testdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/servicely-api/internal/domain"
	"github.com/phrazzld/servicely-api/internal/platform/postgres"
	"github.com/phrazzld/servicely-api/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MustCreateUser inserts a user with the given role and a unique email.
func MustCreateUser(t *testing.T, db store.DBTX, role domain.Role) *domain.User {
	t.Helper()

	email := fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8])
	user, err := domain.NewUser("Test "+string(role), email, "password123", role)
	require.NoError(t, err)

	users := postgres.NewPostgresUserStore(db, nil, bcrypt.MinCost)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

// MustCreateProvider inserts a provider user and profile. The profile is
// verified through the admin path when verified is true.
func MustCreateProvider(
	t *testing.T,
	db store.DBTX,
	services string,
	pincode string,
	verified bool,
) *domain.ProviderProfile {
	t.Helper()

	user := MustCreateUser(t, db, domain.RoleProvider)
	profile, err := domain.NewProviderProfile(user.ID, services, 3, pincode, "555-0100", "")
	require.NoError(t, err)

	providers := postgres.NewPostgresProviderStore(db, nil)
	require.NoError(t, providers.Create(context.Background(), profile))

	if verified {
		admin := MustCreateUser(t, db, domain.RoleAdmin)
		profile, err = providers.SetVerification(context.Background(), profile.ID, true, admin.ID)
		require.NoError(t, err)
	}
	return profile
}
