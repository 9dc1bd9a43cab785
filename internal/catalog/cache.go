package catalog

import (
	"context"
	"encoding/json"
	"time"

	"fruitbasket_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	catalogCacheKey = "items:all"
	catalogCacheTTL = 10 * time.Minute
)

// Cache garde le catalogue public en mémoire partagée. Best-effort : une
// panne du cache ne doit jamais faire échouer une lecture du catalogue.
type Cache interface {
	GetAll(ctx context.Context) ([]models.Item, bool)
	SetAll(ctx context.Context, items []models.Item)
	Invalidate(ctx context.Context)
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) GetAll(ctx context.Context) ([]models.Item, bool) {
	val, err := c.client.Get(ctx, catalogCacheKey).Result()
	if err != nil || val == "" {
		return nil, false
	}

	var cached []models.Item
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, false
	}
	return cached, true
}

func (c *redisCache) SetAll(ctx context.Context, items []models.Item) {
	if data, err := json.Marshal(items); err == nil {
		c.client.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
	}
}

func (c *redisCache) Invalidate(ctx context.Context) {
	c.client.Del(ctx, catalogCacheKey)
}
