// Package service holds the use cases of the booking marketplace: sign-up
// and login, provider registration and verification, the booking lifecycle,
// reviews, and the admin dashboard.
//
// Services take the caller as an explicit domain.Principal and enforce role
// and ownership rules before touching a store. Store errors are translated
// into the domain error taxonomy (domain.ErrNotFound, domain.ErrConflict,
// ...) which the API layer maps to status codes. Side effects that must not
// fail a committed write, such as metrics and cache invalidation, hang off
// events emitted after the write.
package service
