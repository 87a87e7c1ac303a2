// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across client/screen layers.
var (
	// ErrNoSession indicates no valid stored session (missing, undecodable
	// or expired token). Never surfaced to the user as an error message.
	ErrNoSession = errors.New("no session")

	// ErrNotFound indicates the requested entity is not in the held list.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the server rejected the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation indicates a draft failed client-side field validation.
	ErrValidation = errors.New("validation failed")

	// ErrNoDialog indicates a submit without an open form dialog.
	ErrNoDialog = errors.New("no open dialog")
)
