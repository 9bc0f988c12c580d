//go:build integration

package kvstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crmlink/pkg/kvstore"
	"github.com/dmitrymomot/crmlink/pkg/redis"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, redis.Config{URL: url})
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRedis_PutGetDelete(t *testing.T) {
	t.Parallel()

	client := newTestRedisClient(t)
	s := kvstore.NewRedis(client, kvstore.WithPrefix("test-put-get"))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "key", "value", time.Minute))

	v, err := s.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, "value", v)

	raw, err := client.Get(ctx, "test-put-get:key").Result()
	require.NoError(t, err)
	require.Equal(t, "value", raw)

	ttl, err := client.TTL(ctx, "test-put-get:key").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, 50*time.Second)

	require.NoError(t, s.Delete(ctx, "key"))
	_, err = s.Get(ctx, "key")
	require.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestRedis_Expiry(t *testing.T) {
	t.Parallel()

	client := newTestRedisClient(t)
	s := kvstore.NewRedis(client, kvstore.WithPrefix("test-expiry"))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "key", "value", 100*time.Millisecond))
	time.Sleep(200 * time.Millisecond)

	_, err := s.Get(ctx, "key")
	require.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestRedis_RejectsNonPositiveTTL(t *testing.T) {
	t.Parallel()

	client := newTestRedisClient(t)
	s := kvstore.NewRedis(client, kvstore.WithPrefix("test-ttl"))

	err := s.Put(context.Background(), "key", "value", -time.Second)
	require.ErrorIs(t, err, kvstore.ErrInvalidTTL)
}
