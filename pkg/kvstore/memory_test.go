package kvstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crmlink/pkg/kvstore"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemory_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemory()
		defer s.Close()

		_, err := s.Get(context.Background(), "missing")
		require.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemory()
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "key", "value", time.Minute))

		v, err := s.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, "value", v)
	})

	t.Run("returns ErrNotFound once ttl elapsed", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		s := kvstore.NewMemory(kvstore.WithCleanupInterval(0), kvstore.WithClock(clock.Now))
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "key", "value", 10*time.Minute))

		clock.Advance(10*time.Minute - time.Second)
		_, err := s.Get(ctx, "key")
		require.NoError(t, err)

		clock.Advance(time.Second)
		_, err = s.Get(ctx, "key")
		require.ErrorIs(t, err, kvstore.ErrNotFound)
		require.Equal(t, 0, s.Len(), "expired entry should be dropped on access")
	})
}

func TestMemory_Put(t *testing.T) {
	t.Parallel()

	t.Run("overwrites existing value and ttl", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		s := kvstore.NewMemory(kvstore.WithCleanupInterval(0), kvstore.WithClock(clock.Now))
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "key", "first", time.Minute))
		clock.Advance(30 * time.Second)
		require.NoError(t, s.Put(ctx, "key", "second", time.Minute))
		clock.Advance(45 * time.Second)

		v, err := s.Get(ctx, "key")
		require.NoError(t, err)
		require.Equal(t, "second", v)
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemory()
		defer s.Close()

		ctx := context.Background()
		for _, ttl := range []time.Duration{0, -time.Second, -30 * time.Second} {
			err := s.Put(ctx, "key", "value", ttl)
			require.ErrorIs(t, err, kvstore.ErrInvalidTTL)
		}

		_, err := s.Get(ctx, "key")
		require.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("returns ErrClosed after close", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemory()
		require.NoError(t, s.Close())

		err := s.Put(context.Background(), "key", "value", time.Minute)
		require.ErrorIs(t, err, kvstore.ErrClosed)
	})
}

func TestMemory_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes existing key", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemory()
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "key", "value", time.Minute))
		require.NoError(t, s.Delete(ctx, "key"))

		_, err := s.Get(ctx, "key")
		require.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("missing key is not an error", func(t *testing.T) {
		t.Parallel()

		s := kvstore.NewMemory()
		defer s.Close()

		require.NoError(t, s.Delete(context.Background(), "missing"))
	})
}

func TestMemory_Janitor(t *testing.T) {
	t.Parallel()

	s := kvstore.NewMemory(kvstore.WithCleanupInterval(5 * time.Millisecond))
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "short", "value", time.Millisecond))
	require.NoError(t, s.Put(ctx, "long", "value", time.Hour))

	require.Eventually(t, func() bool {
		return s.Len() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	s := kvstore.NewMemory()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "close should be idempotent")
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := kvstore.NewMemory()
	defer s.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "key"
			if i%2 == 0 {
				_ = s.Put(ctx, key, "value", time.Minute)
				return
			}
			_, _ = s.Get(ctx, key)
			_ = s.Delete(ctx, key)
		}(i)
	}
	wg.Wait()
}
