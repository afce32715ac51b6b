package enrichment

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/trustvote/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVCache(t *testing.T) {
	ctx := context.Background()
	repo := metadata.NewMemoryRepository()
	c := NewKVCache(repo)

	_, ok, err := c.Get(ctx, "insight_x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "insight_x", "hello"))
	v, ok, err := c.Get(ctx, "insight_x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	raw, err := repo.Get(ctx, "bulk_cache_insight_x")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))
}

func TestKVCache_ClearKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	repo := metadata.NewMemoryRepository()
	c := NewKVCache(repo)

	require.NoError(t, c.Set(ctx, "insight_a", "a"))
	require.NoError(t, c.Set(ctx, "insight_b", "b"))
	require.NoError(t, repo.Set(ctx, "bulk_v8_user", []byte("@alice")))

	n, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok, err := c.Get(ctx, "insight_a")
	require.NoError(t, err)
	assert.False(t, ok)

	user, err := repo.Get(ctx, "bulk_v8_user")
	require.NoError(t, err)
	assert.Equal(t, "@alice", string(user))
}

func TestRedisCache_Clear(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("other_key", "x"))

	c, err := NewRedisCache("redis://"+mr.Addr()+"/0", 0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "parse_a", "1"))
	require.NoError(t, c.Set(ctx, "parse_b", "2"))

	n, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, mr.Exists("bulk_cache_parse_a"))
	assert.True(t, mr.Exists("other_key"))
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	c, err := NewRedisCache("redis://"+mr.Addr()+"/0", 0)
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(ctx, "parse_bob")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "parse_bob", `{"name":"Bob"}`))
	v, ok, err := c.Get(ctx, "parse_bob")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Bob"}`, v)
	assert.True(t, mr.Exists("bulk_cache_parse_bob"))
	assert.Equal(t, int64(0), int64(mr.TTL("bulk_cache_parse_bob")))
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache("not a url", 0)
	assert.Error(t, err)
}
