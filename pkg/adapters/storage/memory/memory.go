package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

// ChapterCache implements chapters.Cache using an in-memory map
type ChapterCache struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[int]entry
	mu      sync.RWMutex
}

// NewChapterCache creates a new in-memory chapter cache
func NewChapterCache(ttl time.Duration) *ChapterCache {
	return &ChapterCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int]entry),
	}
}

// Get returns the cached body for a chapter
func (c *ChapterCache) Get(ctx context.Context, chapter int) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[chapter]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[chapter]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, chapter)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	out := make([]byte, len(e.body))
	copy(out, e.body)
	return out, true, nil
}

// Set stores a copy of a chapter body
func (c *ChapterCache) Set(ctx context.Context, chapter int, body []byte) error {
	stored := make([]byte, len(body))
	copy(stored, body)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[chapter] = entry{body: stored, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *ChapterCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
