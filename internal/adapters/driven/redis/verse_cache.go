package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.VerseCache = (*VerseCache)(nil)

const versePrefix = "verse:"

// DefaultVerseTTL bounds cache memory. Scripture text never changes, so
// the TTL exists only to let cold chapters fall out.
const DefaultVerseTTL = 7 * 24 * time.Hour

// VerseCache implements driven.VerseCache using Redis.
// Chapter texts are stored as JSON arrays under verse:<key>.
type VerseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVerseCache creates a new Redis-backed VerseCache. A non-positive ttl
// falls back to DefaultVerseTTL.
func NewVerseCache(client *redis.Client, ttl time.Duration) *VerseCache {
	if ttl <= 0 {
		ttl = DefaultVerseTTL
	}
	return &VerseCache{client: client, ttl: ttl}
}

// Get returns the cached verses for a chapter key, or domain.ErrNotFound
func (c *VerseCache) Get(ctx context.Context, key string) ([]string, error) {
	data, err := c.client.Get(ctx, versePrefix+key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached verses: %w", err)
	}

	var verses []string
	if err := json.Unmarshal(data, &verses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached verses: %w", err)
	}

	return verses, nil
}

// Set stores the verses for a chapter key
func (c *VerseCache) Set(ctx context.Context, key string, verses []string) error {
	data, err := json.Marshal(verses)
	if err != nil {
		return fmt.Errorf("failed to marshal verses: %w", err)
	}

	if err := c.client.Set(ctx, versePrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache verses: %w", err)
	}

	return nil
}
