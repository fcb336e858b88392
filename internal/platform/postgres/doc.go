// Package postgres implements the internal/store interfaces on PostgreSQL
// through database/sql and the pgx stdlib driver.
//
// Writes that must be race-free are single statements: the booking insert
// is gated on the provider's verified flag inside INSERT ... SELECT, status
// changes are compare-and-set UPDATEs, and a review insert folds its rating
// into the provider aggregate through a data-modifying CTE. Uniqueness is
// left to constraints, never to a read-then-write.
package postgres
