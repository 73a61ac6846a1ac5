// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"finance_backend/internal/feature/quotes/usecase"
)

// rateKey is the Redis key holding the cached USD/INR rate.
const rateKey = "fxrate:USD_INR"

// CachingRateRepository decorates a RateRepository with Redis caching.
// The FX rate moves slowly compared to quote prices, so one upstream call
// can serve every crypto refresh within the TTL. All cache operations are
// best effort: a Redis failure falls through to the inner repository.
type CachingRateRepository struct {
	inner usecase.RateRepository
	rdb   *redis.Client
	ttl   time.Duration
}

var _ usecase.RateRepository = (*CachingRateRepository)(nil)

// NewCachingRateRepository decorates a RateRepository with Redis caching.
// If ttl is 0 or negative, it defaults to 1 hour.
func NewCachingRateRepository(rdb *redis.Client, ttl time.Duration, inner usecase.RateRepository) *CachingRateRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachingRateRepository{inner: inner, rdb: rdb, ttl: ttl}
}

// USDINR returns the conversion rate, checking the cache first and falling
// back to the upstream repository.
func (c *CachingRateRepository) USDINR(ctx context.Context) (decimal.Decimal, error) {
	// Bypass the cache entirely when Redis is not configured.
	if c.rdb == nil {
		return c.inner.USDINR(ctx)
	}

	if s, err := c.rdb.Get(ctx, rateKey).Result(); err == nil && s != "" {
		if rate, err := decimal.NewFromString(s); err == nil && rate.GreaterThan(decimal.Zero) {
			return rate, nil
		}
		// Delete a corrupted cache entry.
		_ = c.rdb.Del(ctx, rateKey).Err()
	}

	rate, err := c.inner.USDINR(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	_ = c.rdb.Set(ctx, rateKey, rate.String(), c.ttl).Err()
	return rate, nil
}
