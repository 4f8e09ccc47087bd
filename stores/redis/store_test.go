package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, prefix string, ttl time.Duration) (*redisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return newStoreWithClient(client, prefix, ttl), mr
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestRedisStore_Get_Success(t *testing.T) {
	store, mr := setupTestRedis(t, "", 0)
	require.NoError(t, mr.Set("wishlist:u1", `{"x":null}`))

	value, found, err := store.Get(context.Background(), "wishlist:u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"x":null}`, value)
}

func TestRedisStore_Get_NotFound(t *testing.T) {
	store, _ := setupTestRedis(t, "", 0)

	value, found, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestRedisStore_Get_ConnectionError(t *testing.T) {
	store, mr := setupTestRedis(t, "", 0)
	mr.Close()

	_, found, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, found)
}

// ---------------------------------------------------------------------------
// Set
// ---------------------------------------------------------------------------

func TestRedisStore_Set_WithPrefix(t *testing.T) {
	store, mr := setupTestRedis(t, "gt:", 0)

	require.NoError(t, store.Set(context.Background(), "draft:u:t:s", `{"a":1}`))

	raw, err := mr.Get("gt:draft:u:t:s")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, raw)
	assert.False(t, mr.Exists("draft:u:t:s"))

	value, found, err := store.Get(context.Background(), "draft:u:t:s")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"a":1}`, value)
}

func TestRedisStore_Set_TTL(t *testing.T) {
	store, mr := setupTestRedis(t, "", time.Hour)

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	assert.Equal(t, time.Hour, mr.TTL("k"))

	mr.FastForward(2 * time.Hour)
	_, found, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_Set_NoTTL(t *testing.T) {
	store, mr := setupTestRedis(t, "", 0)

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	assert.Equal(t, time.Duration(0), mr.TTL("k"))
}

func TestRedisStore_Set_Overwrite(t *testing.T) {
	store, _ := setupTestRedis(t, "", 0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "first"))
	require.NoError(t, store.Set(ctx, "k", "second"))

	value, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestRedisStore_Delete(t *testing.T) {
	store, mr := setupTestRedis(t, "", 0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestNewStore_PingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewStore(context.Background(), Options{Addr: addr})
	assert.Error(t, err)
}

func TestNewStore_Success(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewStore(context.Background(), Options{Addr: mr.Addr(), KeyPrefix: "p:"})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	assert.True(t, mr.Exists("p:k"))
}
