//go:build integration

package main

import (
	"context"
	"testing"

	"github.com/phrazzld/servicely-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedDatabase_Idempotent(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	testdb.Truncate(t, db)
	t.Cleanup(func() { testdb.Truncate(t, db) })

	ctx := context.Background()
	require.NoError(t, seedDatabase(ctx, db, bcrypt.MinCost, quietLogger()))
	require.NoError(t, seedDatabase(ctx, db, bcrypt.MinCost, quietLogger()))

	var users, verified int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&users))
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM provider_profiles WHERE verified`).Scan(&verified))
	assert.Equal(t, 5, users)
	assert.Equal(t, 3, verified)

	var hash string
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT hashed_password FROM users WHERE email = 'admin@example.com'`).Scan(&hash))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin123")))
}
