package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"learnloop/internal/model"
)

// SearchCache stores video-search results per query. Search results
// change slowly, so cache hits save both latency and API quota. The
// GetSearch miss path and SetSearch failures are soft: callers fall
// through to the live API.
type SearchCache interface {
	GetSearch(ctx context.Context, query string) ([]model.VideoCandidate, bool)
	SetSearch(ctx context.Context, query string, videos []model.VideoCandidate)
}

type searchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache creates a search-result cache with a 6 hour TTL
func NewSearchCache(client *redis.Client) SearchCache {
	return &searchCache{
		client: client,
		ttl:    6 * time.Hour,
	}
}

// key hashes the query so arbitrary user text never lands in a Redis
// key verbatim.
func (c *searchCache) key(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return "search:" + hex.EncodeToString(sum[:16])
}

func (c *searchCache) GetSearch(ctx context.Context, query string) ([]model.VideoCandidate, bool) {
	data, err := c.client.Get(ctx, c.key(query)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[SearchCache] get failed: %v", err)
		return nil, false
	}
	var videos []model.VideoCandidate
	if err := json.Unmarshal([]byte(data), &videos); err != nil {
		return nil, false
	}
	return videos, true
}

func (c *searchCache) SetSearch(ctx context.Context, query string, videos []model.VideoCandidate) {
	data, err := json.Marshal(videos)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(query), data, c.ttl).Err(); err != nil {
		log.Printf("[SearchCache] set failed: %v", err)
	}
}
