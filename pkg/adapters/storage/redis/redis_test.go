package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ChapterCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
	t.Cleanup(func() { client.Close() })

	return NewChapterCache(client, ttl, nil), mr
}

func TestChapterKey(t *testing.T) {
	assert.Equal(t, "gita:chapter:1", ChapterKey(1))
	assert.Equal(t, "gita:chapter:18", ChapterKey(18))
}

func TestChapterCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	body, ok, err := cache.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, body)
}

func TestChapterCache_SetGet(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 2, []byte(`{"chapter_number":2}`)))

	body, ok, err := cache.Get(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"chapter_number":2}`, string(body))

	stored, err := mr.Get("gita:chapter:2")
	require.NoError(t, err)
	assert.Equal(t, `{"chapter_number":2}`, stored)
}

func TestChapterCache_TTL(t *testing.T) {
	cache, mr := newTestCache(t, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 9, []byte(`{}`)))
	assert.Equal(t, 10*time.Minute, mr.TTL("gita:chapter:9"))

	mr.FastForward(9 * time.Minute)
	_, ok, err := cache.Get(ctx, 9)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(time.Minute)
	_, ok, err = cache.Get(ctx, 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChapterCache_BackendErrors(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)
	ctx := context.Background()

	mr.SetError("LOADING server is loading")

	_, ok, err := cache.Get(ctx, 1)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "failed to get chapter")

	err = cache.Set(ctx, 1, []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save chapter")

	mr.SetError("")
	assert.NoError(t, cache.Ping(ctx))
}
