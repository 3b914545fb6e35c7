// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email or title taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnknownEmail indicates a login attempt for an email with no account.
	ErrUnknownEmail = errors.New("unknown email")

	// ErrWrongPassword indicates a password mismatch for an existing account.
	ErrWrongPassword = errors.New("wrong password")

	// ErrUnauthorized indicates a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")
)
