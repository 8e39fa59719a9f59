package authsession_test

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/exyconn/authkit/pkg/authsession"
)

func TestMemoryStorage(t *testing.T) {
	t.Parallel()

	storage := authsession.NewMemoryStorage()

	_, ok := storage.Get("missing")
	assert.False(t, ok)

	storage.Set("k", "v")
	value, ok := storage.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", value)

	storage.Set("k", "v2")
	value, _ = storage.Get("k")
	assert.Equal(t, "v2", value)

	storage.Remove("k")
	_, ok = storage.Get("k")
	assert.False(t, ok)

	// Removing an absent key is a no-op.
	storage.Remove("k")
}

func TestNoopStorage(t *testing.T) {
	t.Parallel()

	storage := authsession.NewNoopStorage()

	storage.Set("k", "v")
	_, ok := storage.Get("k")
	assert.False(t, ok)
	storage.Remove("k")
}

func TestRedisStorage_UnavailableDegradesToNoop(t *testing.T) {
	t.Parallel()

	// The Storage contract requires degrading, not failing, when the
	// medium is unavailable.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	storage := authsession.NewRedisStorage(client,
		authsession.WithRedisTimeout(100*time.Millisecond),
	)

	storage.Set("k", "v")
	_, ok := storage.Get("k")
	assert.False(t, ok)
	storage.Remove("k")
}
