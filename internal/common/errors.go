// Package common defines shared constants and sentinel errors used across
// client and server layers of daybook. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorUnavailable  = errors.New("service unavailable")

	// Validation errors.
	ErrorValidation    = errors.New("validation error")
	ErrorInvalidBucket = errors.New("invalid bucket")

	// Access key errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
