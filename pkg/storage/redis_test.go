package storage_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/storage"
)

func setupRedis(t *testing.T) *storage.Redis {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return storage.NewRedis(client, "authkit:")
}

func TestRedis_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := setupRedis(t)

	require.NoError(t, store.Set(ctx, "authToken", []byte("t1")))

	value, err := store.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.Equal(t, []byte("t1"), value)

	_, err = store.Get(ctx, "unknown")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestRedis_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := setupRedis(t)

	require.NoError(t, store.Set(ctx, "authToken", []byte("t1")))
	require.NoError(t, store.Delete(ctx, "authToken"))

	_, err := store.Get(ctx, "authToken")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	assert.NoError(t, store.Delete(ctx, "authToken"))
}

func TestRedis_KeyPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := storage.NewRedis(client, "app:")
	require.NoError(t, store.Set(ctx, "authToken", []byte("t1")))

	raw, err := srv.Get("app:authToken")
	require.NoError(t, err)
	assert.Equal(t, "t1", raw)
}

func TestConnect_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := storage.Connect(context.Background(), storage.RedisConfig{
		ConnectionURL:  "not-a-url",
		RetryAttempts:  1,
		RetryInterval:  0,
		ConnectTimeout: 0,
	})
	assert.ErrorIs(t, err, storage.ErrFailedToParseRedisConnString)
}
