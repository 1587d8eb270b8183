package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocksmith/adminctl/internal/ports"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return mr, client
}

func TestStore_ReadMissingKey(t *testing.T) {
	_, client := newTestRedis(t)
	store := New(client)

	_, err := store.Read(context.Background(), ports.KeyAccessToken)

	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_WriteThenRead(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := New(client)

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, "tok-1"))

	got, err := store.Read(ctx, ports.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	// Keys land under the prefix so several tools can share one Redis.
	assert.True(t, mr.Exists(DefaultPrefix+ports.KeyAccessToken))
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	store := New(client)

	require.NoError(t, store.Write(ctx, ports.KeyUser, `{"id":"u1"}`))
	require.NoError(t, store.Delete(ctx, ports.KeyUser))

	_, err := store.Read(ctx, ports.KeyUser)
	require.ErrorIs(t, err, ports.ErrNotFound)

	// Deleting a missing key is a no-op.
	require.NoError(t, store.Delete(ctx, ports.KeyUser))
}

func TestStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewWithOptions(client, "", 30*time.Second)

	require.NoError(t, store.Write(ctx, ports.KeyRefreshToken, "ref-1"))

	mr.FastForward(time.Minute)

	_, err := store.Read(ctx, ports.KeyRefreshToken)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_CustomPrefix(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewWithOptions(client, "team42:", 0)

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, "tok"))

	assert.True(t, mr.Exists("team42:"+ports.KeyAccessToken))
}
