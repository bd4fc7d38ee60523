package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"learnloop/internal/model"
)

// HistoryCache fronts the per-user conversation list. Mongo stays the
// source of truth; the cache is invalidated on every write.
type HistoryCache interface {
	SetList(ctx context.Context, userID string, conversations []model.Conversation) error
	GetList(ctx context.Context, userID string) ([]model.Conversation, error)
	Invalidate(ctx context.Context, userID string) error
}

type historyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHistoryCache creates a history cache with a 15 minute TTL
func NewHistoryCache(client *redis.Client) HistoryCache {
	return &historyCache{
		client: client,
		ttl:    15 * time.Minute,
	}
}

func (c *historyCache) key(userID string) string {
	return fmt.Sprintf("user:%s:history", userID)
}

func (c *historyCache) SetList(ctx context.Context, userID string, conversations []model.Conversation) error {
	data, err := json.Marshal(conversations)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl).Err()
}

func (c *historyCache) GetList(ctx context.Context, userID string) ([]model.Conversation, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var conversations []model.Conversation
	if err := json.Unmarshal([]byte(data), &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (c *historyCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
