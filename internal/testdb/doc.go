// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests using it are built with the "integration" tag
// and skip themselves when DATABASE_URL is not set.
//
// Typical usage:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		users := postgres.NewPostgresUserStore(tx, nil, bcrypt.MinCost)
//		...
//	})
//
// Tests that exercise concurrency cannot share one transaction; they use
// the pool directly and call Truncate in cleanup.
package testdb
