package kvstore

// RedisOption configures the Redis store.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
}

// WithPrefix sets a key prefix for all operations.
// Keys are stored as "{prefix}:{key}", which keeps several deployments
// apart when they share one Redis database.
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}
