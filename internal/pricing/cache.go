package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedCatalog is a redis read-through cache in front of a CatalogRepository.
// Catalog rows are operator-maintained and change rarely, so a short TTL keeps
// quote latency off the database without a real staleness risk. Cache failures
// fall back to the inner repository.
type CachedCatalog struct {
	inner  CatalogRepository
	client *redis.Client
	ttl    time.Duration
}

func NewCachedCatalog(inner CatalogRepository, client *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

func (c *CachedCatalog) GetPackage(ctx context.Context, code string) (*Package, error) {
	key := fmt.Sprintf("catalog:package:%s", code)

	var pkg Package
	if ok := c.fetch(ctx, key, &pkg); ok {
		return &pkg, nil
	}

	fresh, err := c.inner.GetPackage(ctx, code)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh)
	return fresh, nil
}

func (c *CachedCatalog) ListAddons(ctx context.Context) ([]Addon, error) {
	const key = "catalog:addons"

	var addons []Addon
	if ok := c.fetch(ctx, key, &addons); ok {
		return addons, nil
	}

	fresh, err := c.inner.ListAddons(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh)
	return fresh, nil
}

func (c *CachedCatalog) GetOvertimeRule(ctx context.Context) (*OvertimeRule, error) {
	const key = "catalog:overtime"

	var rule OvertimeRule
	if ok := c.fetch(ctx, key, &rule); ok {
		return &rule, nil
	}

	fresh, err := c.inner.GetOvertimeRule(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh)
	return fresh, nil
}

func (c *CachedCatalog) fetch(ctx context.Context, key string, dst any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("catalog cache read %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("catalog cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *CachedCatalog) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("catalog cache encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("catalog cache write %s: %v", key, err)
	}
}
