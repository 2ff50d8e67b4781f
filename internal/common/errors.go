// Package common defines shared constants and sentinel errors used across
// the engine and server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed service token).
	ErrInvalidToken = errors.New("invalid token")

	// Linking errors.
	ErrAlreadyLinked = errors.New("account already linked")
	ErrSelfLink      = errors.New("cannot link an account to itself")

	// Import errors.
	ErrNoUsableRows = errors.New("no usable rows in file")
)
