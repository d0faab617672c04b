package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const RecipeCacheTTL = 5 * time.Minute

// RecipeListKey is the cache key for the full recipe index.
const RecipeListKey = "recipes:all"

type RecipeCache struct {
	client *redis.Client
}

func NewRecipeCache(client *redis.Client) *RecipeCache {
	return &RecipeCache{client: client}
}

// Get recipe list from cache
func (c *RecipeCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

// Set recipe list to cache with TTL
func (c *RecipeCache) Set(ctx context.Context, key string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, RecipeCacheTTL).Err()
}

// Invalidate drops a cached entry after a write.
func (c *RecipeCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
