// Package common defines shared constants and sentinel errors used across
// client and server layers of coinkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors. Each one maps to a distinct transport status.
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorUnavailable   = errors.New("storage unavailable")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTokenCollision means a freshly generated session token already
	// belongs to another session.
	ErrTokenCollision = errors.New("session token collision")
)
