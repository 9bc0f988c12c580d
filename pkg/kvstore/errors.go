package kvstore

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a key does not exist or has expired.
	ErrNotFound = errors.New("kvstore: key not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("kvstore: closed")

	// ErrInvalidTTL is returned when Put is called with a non-positive TTL.
	ErrInvalidTTL = errors.New("kvstore: ttl must be positive")
)
