// Package redis opens go-redis clients for the credential store.
//
// It wraps [github.com/redis/go-redis/v9] with env-driven configuration,
// a connect-time PING with retries, a health check closure and a shutdown
// hook.
//
// # Usage
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := kvstore.NewRedis(client, kvstore.WithPrefix("crmlink"))
//
// # Health Checks
//
// [Healthcheck] returns a func(context.Context) error suitable for the
// readiness endpoint:
//
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
//
// # Error Handling
//
//   - [ErrEmptyConnectionURL]: empty connection URL
//   - [ErrFailedToParseURL]: invalid URL or scheme
//   - [ErrConnectionFailed]: PING failed after all retry attempts
//   - [ErrHealthcheckFailed]: PING failed, or every pooled connection timed
//     out since the previous probe
//
// Errors are wrapped using [errors.Join] to preserve the original cause.
package redis
