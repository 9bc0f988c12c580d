package kvstore

import (
	"context"
	"time"
)

// Store is an expiring string-keyed store.
//
// Every entry carries a TTL and disappears once it elapses. There is no
// "never expires" mode: Put rejects non-positive TTLs with ErrInvalidTTL so
// an already-stale value can never be written by accident.
type Store interface {
	// Put stores value under key for ttl, overwriting any previous value.
	Put(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value stored under key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	return nil
}
