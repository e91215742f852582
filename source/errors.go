package source

import "errors"

var (
	// ErrFetchTimeout indicates a fetch exceeded the bridge's per-call timeout.
	ErrFetchTimeout = errors.New("fetch timed out")

	// ErrNilFetch indicates a nil fetch function was submitted.
	ErrNilFetch = errors.New("fetch function is nil")

	// ErrBridgeReleased indicates the bridge's worker pool has been released.
	ErrBridgeReleased = errors.New("bridge is released")

	// ErrInvalidMaxAttempts indicates maxAttempts was not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
