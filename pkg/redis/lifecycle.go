package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness check that pings Redis.
// It also fails when every pool connection timed out since the last probe
// window, which a PING alone can miss under load.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	var lastTimeouts atomic.Uint32
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if s, ok := client.(interface{ PoolStats() *redis.PoolStats }); ok {
			if stats := s.PoolStats(); stats != nil {
				delta := stats.Timeouts - lastTimeouts.Swap(stats.Timeouts)
				if delta > 0 && stats.TotalConns > 0 && delta >= stats.TotalConns {
					return errors.Join(ErrHealthcheckFailed, fmt.Errorf("pool exhausted: %d timeouts", delta))
				}
			}
		}
		return nil
	}
}

// Shutdown returns a server shutdown hook that closes the client.
// Closing an already closed client is not an error.
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(context.Context) error {
		if client == nil {
			return nil
		}
		if err := client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			return err
		}
		return nil
	}
}
