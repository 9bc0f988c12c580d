package kvstore

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	expiresAt time.Time
	value     string
}

// Memory is a process-local Store with TTL-based expiration.
// Suitable for single-instance deployments and tests.
type Memory struct {
	items map[string]entry
	opts  *memoryOptions
	done  chan struct{}
	mu    sync.Mutex

	closed bool
}

// NewMemory creates a new in-memory store.
//
// Example:
//
//	s := kvstore.NewMemory(kvstore.WithCleanupInterval(30 * time.Second))
//	defer s.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		items: make(map[string]entry),
		opts:  o,
		done:  make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Put stores value under key for ttl.
func (m *Memory) Put(_ context.Context, key, value string, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.items[key] = entry{value: value, expiresAt: m.opts.now().Add(ttl)}
	return nil
}

// Get returns the value stored under key.
// Expired entries are removed on access.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", ErrClosed
	}

	e, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	if !m.opts.now().Before(e.expiresAt) {
		delete(m.items, key)
		return "", ErrNotFound
	}

	return e.value, nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	delete(m.items, key)
	return nil
}

// Len reports the number of entries, including expired ones not yet swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor goroutine and marks the store as closed.
// Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)

	return nil
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *Memory) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.now()
	for key, e := range m.items {
		if !now.Before(e.expiresAt) {
			delete(m.items, key)
		}
	}
}

var _ Store = (*Memory)(nil)
