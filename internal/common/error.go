// Package common defines shared constants and sentinel errors used across
// client and server layers of trustvote. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Identity store constraint errors. Both are reported by the store when an
	// insert collides with an existing row; the message text travels over the
	// wire unchanged so the client can map it back.
	ErrHandleTaken = errors.New("handle already registered")
	ErrIDTaken     = errors.New("identity id already in use")
)
