package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// WeightCache handles Redis operations for the effective block weights.
// Index computations read weights fresh on every run; the cache only
// spares the weights collection a lookup per request, so the TTL is
// short and invalidation on write is mandatory.
type WeightCache interface {
	Get(ctx context.Context) (map[string]int, error)
	Set(ctx context.Context, weights map[string]int) error
	Invalidate(ctx context.Context) error
}

type weightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWeightCache creates a new weight cache
func NewWeightCache(client *redis.Client) WeightCache {
	return &weightCache{
		client: client,
		ttl:    time.Minute,
	}
}

const weightKey = "apm:weights"

func (c *weightCache) Get(ctx context.Context) (map[string]int, error) {
	data, err := c.client.Get(ctx, weightKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var weights map[string]int
	if err := json.Unmarshal([]byte(data), &weights); err != nil {
		return nil, err
	}
	return weights, nil
}

func (c *weightCache) Set(ctx context.Context, weights map[string]int) error {
	data, err := json.Marshal(weights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, weightKey, data, c.ttl).Err()
}

func (c *weightCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, weightKey).Err()
}
