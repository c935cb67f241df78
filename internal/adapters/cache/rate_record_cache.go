package cache

import (
	"context"
	"fmt"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"

	"github.com/dgraph-io/ristretto"
	"github.com/shopspring/decimal"
)

// CachedRateStore is a read-through decorator: records are cached by base
// with a TTL and dropped on upsert, so the next read repopulates from the
// backing store. This is the only caching the store layer provides.
type CachedRateStore struct {
	store adapters.RateStore
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCachedRateStore(store adapters.RateStore, maxItems int64, ttl time.Duration) (*CachedRateStore, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate record cache failed: %w", err)
	}
	return &CachedRateStore{store: store, cache: c, ttl: ttl}, nil
}

func (c *CachedRateStore) GetByBase(ctx context.Context, base string) (*domain.RateRecord, error) {
	if v, ok := c.cache.Get(base); ok {
		if rec, ok := v.(*domain.RateRecord); ok {
			return rec, nil
		}
	}

	rec, err := c.store.GetByBase(ctx, base)
	if err != nil {
		return nil, err
	}
	c.cache.SetWithTTL(base, rec, 1, c.ttl)
	return rec, nil
}

func (c *CachedRateStore) UpsertRate(ctx context.Context, base string, target string, rate decimal.Decimal) (*domain.RateRecord, error) {
	rec, err := c.store.UpsertRate(ctx, base, target, rate)
	if err != nil {
		return nil, err
	}
	c.cache.Del(base)
	return rec, nil
}

func (c *CachedRateStore) Close() { c.cache.Close() }
