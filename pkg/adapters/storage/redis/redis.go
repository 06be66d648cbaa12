package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ChapterCache implements chapters.Cache using Redis
type ChapterCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewChapterCache creates a new Redis chapter cache
func NewChapterCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ChapterCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChapterCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Get returns the cached body for a chapter
func (c *ChapterCache) Get(ctx context.Context, chapter int) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, ChapterKey(chapter)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get chapter: %w", err)
	}

	return data, true, nil
}

// Set stores a chapter body with the cache TTL
func (c *ChapterCache) Set(ctx context.Context, chapter int, body []byte) error {
	if err := c.client.Set(ctx, ChapterKey(chapter), body, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save chapter: %w", err)
	}

	c.logger.Debug("chapter cached",
		zap.Int("chapter", chapter),
		zap.Duration("ttl", c.ttl))

	return nil
}

// Ping checks the Redis connection
func (c *ChapterCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// ChapterKey returns the Redis key for a chapter
func ChapterKey(chapter int) string {
	return fmt.Sprintf("gita:chapter:%d", chapter)
}
