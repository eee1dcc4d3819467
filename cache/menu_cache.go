package cache

import (
	"context"
	"encoding/json"
	"time"

	"pho-paradise-api/models"

	"github.com/redis/go-redis/v9"
)

const menuKey = "menu:all"

// MenuCache is a best-effort read-through cache for the full menu list.
// All errors degrade to a miss; the store stays authoritative.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

func (c *MenuCache) Get(ctx context.Context) ([]models.MenuItem, bool) {
	raw, err := c.Client.Get(ctx, menuKey).Bytes()
	if err != nil {
		return nil, false
	}
	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *MenuCache) Set(ctx context.Context, items []models.MenuItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.Client.Set(ctx, menuKey, raw, c.TTL)
}

func (c *MenuCache) Invalidate(ctx context.Context) {
	c.Client.Del(ctx, menuKey)
}
