package client

import "errors"

var (
	// ErrUnavailable means the trust store could not be reached. Callers
	// keep working on cached data.
	ErrUnavailable = errors.New("trust store unavailable")
	// ErrLocalDataNotAvailable means the local cache could not be opened or
	// migrated.
	ErrLocalDataNotAvailable = errors.New("local cache unavailable")
)
