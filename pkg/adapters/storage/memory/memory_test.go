package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterCache_SetGet(t *testing.T) {
	c := NewChapterCache(time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	body := []byte(`{"chapter_number":3}`)
	require.NoError(t, c.Set(ctx, 3, body))

	// mutating the caller's slice must not leak into the cache
	body[0] = 'X'

	got, ok, err := c.Get(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"chapter_number":3}`, string(got))
	assert.Equal(t, 1, c.Len())
}

func TestChapterCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewChapterCache(time.Minute)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 5, []byte(`{}`)))

	now = now.Add(59 * time.Second)
	_, ok, _ := c.Get(ctx, 5)
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, 5)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
