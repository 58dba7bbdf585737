package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrFailedToParseRedisConnString indicates an invalid connection URL
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")

	// ErrRedisNotReady indicates the server did not answer within the
	// configured retry window
	ErrRedisNotReady = errors.New("redis did not become ready within the given time period")
)

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	ConnectionURL  string        `env:"AUTH_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"AUTH_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"AUTH_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"AUTH_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyPrefix      string        `env:"AUTH_REDIS_KEY_PREFIX" envDefault:"authkit:"`
}

// Connect establishes a Redis connection using the provided configuration,
// retrying up to RetryAttempts times with RetryInterval between attempts.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// Redis implements Storage on top of a go-redis client. Useful when the
// session state should be shared between processes or survive the host.
type Redis struct {
	db     redis.UniversalClient
	prefix string
}

// NewRedis wraps an existing Redis client as a Storage.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{
		db:     client,
		prefix: prefix,
	}
}

// NewRedisFromConfig connects to Redis and wraps the client as a Storage.
func NewRedisFromConfig(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRedis(client, cfg.KeyPrefix), nil
}

// Get retrieves the value stored under key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	value, err := r.db.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

// Set stores value under key without expiration; session invalidation is
// the owner's concern, not the store's.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	return r.db.Set(ctx, r.prefix+key, value, 0).Err()
}

// Delete removes the value stored under key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	return r.db.Del(ctx, r.prefix+key).Err()
}

// Close terminates the underlying Redis connection.
func (r *Redis) Close() error {
	return r.db.Close()
}
