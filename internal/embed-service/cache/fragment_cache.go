package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/sports-picks-cms/internal/shared/cache"
)

// Cache guarda o HTML já renderizado de cada widget. Invalidação é feita pelo embed-cache-worker.
type Cache struct {
	R   redis.UniversalClient
	ttl time.Duration
}

func New(r redis.UniversalClient, ttl time.Duration) *Cache { return &Cache{R: r, ttl: ttl} }

func (c *Cache) get(ctx context.Context, key string) (string, bool, error) {
	s, err := c.R.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func (c *Cache) GetSite(ctx context.Context, siteID string) (string, bool, error) {
	return c.get(ctx, cache.SiteFragmentKey(siteID))
}

func (c *Cache) SetSite(ctx context.Context, siteID, html string) error {
	return c.R.Set(ctx, cache.SiteFragmentKey(siteID), html, c.ttl).Err()
}

func (c *Cache) GetPick(ctx context.Context, pickID string) (string, bool, error) {
	return c.get(ctx, cache.PickFragmentKey(pickID))
}

func (c *Cache) SetPick(ctx context.Context, pickID, html string) error {
	return c.R.Set(ctx, cache.PickFragmentKey(pickID), html, c.ttl).Err()
}
