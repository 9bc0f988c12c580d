// Package kvstore provides an expiring string key-value store with
// in-memory and Redis backends.
//
// The Store contract is deliberately small: Put with a mandatory positive
// TTL, Get, and Delete. Values are opaque strings; callers own their encoding.
//
// # Backends
//
//   - Memory: process-local map with lazy expiry on access and an optional
//     background janitor. Good for tests and single-instance deployments.
//   - Redis: delegates expiry to Redis key TTLs via go-redis. Supports a key
//     prefix for namespacing.
//
// # Usage
//
//	s := kvstore.NewMemory()
//	defer s.Close()
//
//	if err := s.Put(ctx, "state:org-1:user-1", token, 10*time.Minute); err != nil {
//		return err
//	}
//
//	v, err := s.Get(ctx, "state:org-1:user-1")
//	if errors.Is(err, kvstore.ErrNotFound) {
//		// missing or expired
//	}
//
// # TTL Semantics
//
// Put rejects zero and negative TTLs with ErrInvalidTTL. A value whose
// lifetime has already run out must be deleted, not written.
//
// # Error Handling
//
//   - ErrNotFound: key missing or expired
//   - ErrClosed: Memory store used after Close
//   - ErrInvalidTTL: non-positive TTL passed to Put
//
// Backend errors (network, Redis protocol) are returned unwrapped.
package kvstore
