// Package cache is a small read-through redis cache for the public catalog.
// The store's catalog is tiny and read-heavy; product mutations from the
// admin panel invalidate the cached listing.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lzloop13-dot/LZ-Loop/models"
)

const (
	productsKeyPrefix = "catalog:products"
	productsTTL       = time.Minute
)

// productsKey scopes the cached listing to the requested category filter so a
// filtered response never shadows the full catalog (or vice versa).
func productsKey(category string) string {
	if category == "" {
		return productsKeyPrefix
	}
	return productsKeyPrefix + ":" + category
}

// ProductCache wraps a redis client. A nil *ProductCache is valid and simply
// misses on every lookup, so callers never need to branch on whether caching
// is enabled.
type ProductCache struct {
	client *redis.Client
}

// New connects to redis at addr. Empty addr disables caching.
func New(addr string) *ProductCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	return &ProductCache{client: client}
}

// GetProducts returns the cached listing for the given category filter
// (empty means the full catalog), if any.
func (c *ProductCache) GetProducts(ctx context.Context, category string) ([]models.Product, bool) {
	if c == nil {
		return nil, false
	}
	cached, err := c.client.Get(ctx, productsKey(category)).Result()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(cached), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProducts stores the listing for the given category filter with a short
// TTL.
func (c *ProductCache) SetProducts(ctx context.Context, category string, products []models.Product) {
	if c == nil {
		return
	}
	if data, err := json.Marshal(products); err == nil {
		c.client.Set(ctx, productsKey(category), data, productsTTL)
	}
}

// Invalidate drops every cached listing after an admin mutation.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.client.Del(ctx,
		productsKey(""),
		productsKey(string(models.CategoryBag)),
		productsKey(string(models.CategoryPouch)),
	)
}

// Close releases the underlying connection.
func (c *ProductCache) Close() {
	if c != nil {
		c.client.Close()
	}
}
