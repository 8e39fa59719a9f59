package authsession

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage is a Storage backed by Redis, for server-side contexts where
// the session outlives a single process (e.g. a BFF holding sessions for
// many browser clients, keyed per user by the caller-supplied prefix).
//
// Per the Storage contract failures never propagate: Redis errors are
// logged at Warn and the operation degrades to a no-op / absent read.
type RedisStorage struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
	logger  *slog.Logger
}

// RedisStorageOption configures RedisStorage.
type RedisStorageOption func(*RedisStorage)

// WithRedisTTL sets the expiry applied to every written key. Zero means
// no expiry.
func WithRedisTTL(ttl time.Duration) RedisStorageOption {
	return func(s *RedisStorage) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithRedisTimeout bounds each Redis operation. Storage calls are
// synchronous on the session hot path, so the default is short.
func WithRedisTimeout(timeout time.Duration) RedisStorageOption {
	return func(s *RedisStorage) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithRedisLogger sets the logger for swallowed failures.
func WithRedisLogger(logger *slog.Logger) RedisStorageOption {
	return func(s *RedisStorage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRedisStorage wraps a connected Redis client as a Storage.
func NewRedisStorage(client *redis.Client, opts ...RedisStorageOption) *RedisStorage {
	s := &RedisStorage{
		client:  client,
		ttl:     30 * 24 * time.Hour,
		timeout: 2 * time.Second,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStorage) Get(key string) (string, bool) {
	ctx, cancel := s.opContext()
	defer cancel()

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("redis storage read failed", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

func (s *RedisStorage) Set(key, value string) {
	ctx, cancel := s.opContext()
	defer cancel()

	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		s.logger.Warn("redis storage write failed", "key", key, "error", err)
	}
}

func (s *RedisStorage) Remove(key string) {
	ctx, cancel := s.opContext()
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("redis storage delete failed", "key", key, "error", err)
	}
}

func (s *RedisStorage) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}
