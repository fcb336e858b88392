// Package store defines the persistence contracts for users, provider
// profiles, bookings, reviews and admin data. The interfaces keep the
// services independent of PostgreSQL; the conditional-write semantics
// documented on each method are part of the contract and must hold for
// every implementation.
package store
