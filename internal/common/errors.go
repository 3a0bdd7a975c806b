// Package common defines shared constants and sentinel errors used across
// the taskcal server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorValidation is wrapped with the offending field, e.g.
	// fmt.Errorf("%w: date is required", ErrorValidation).
	ErrorValidation = errors.New("validation error")

	// ErrLinkUnavailable covers both unknown and deactivated share tokens.
	ErrLinkUnavailable = errors.New("invalid or expired share link")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
