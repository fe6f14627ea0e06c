// Package cache holds the optional redis read-through cache for exchange rates.
// Every method degrades to a miss when redis is not configured or unreachable.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// rateKeyFmt is the hash holding one currency pair's effective rates, keyed by query date.
const rateKeyFmt = "fx:%s:%s"

const dateField = "2006-01-02"

// NewRedisClient connects to the redis instance at url, e.g. "redis://localhost:6379/0".
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// Close the failed client so callers can fall back to no cache
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// RateCache caches resolved exchange rates per pair and date.
type RateCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewRateCache wraps client. A nil client yields a cache that always misses.
func NewRateCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *RateCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateCache{client: client, ttl: ttl, logger: logger}
}

// Enabled reports whether a redis client is configured.
func (c *RateCache) Enabled() bool {
	return c != nil && c.client != nil
}

// RateKey returns the hash key of a currency pair.
func RateKey(from, to string) string {
	return fmt.Sprintf(rateKeyFmt, strings.ToUpper(from), strings.ToUpper(to))
}

// Get returns the cached rate of from→to for date.
func (c *RateCache) Get(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, bool) {
	if !c.Enabled() {
		return decimal.Zero, false
	}
	raw, err := c.client.HGet(ctx, RateKey(from, to), date.Format(dateField)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Rate cache read failed", slog.String("error", err.Error()))
		}
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return rate, true
}

// Set stores the rate of from→to for date and refreshes the pair's expiry.
func (c *RateCache) Set(ctx context.Context, from, to string, date time.Time, rate decimal.Decimal) {
	if !c.Enabled() {
		return
	}
	key := RateKey(from, to)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, date.Format(dateField), rate.String())
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("Rate cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// InvalidatePair drops every cached date of the pair in both directions.
func (c *RateCache) InvalidatePair(ctx context.Context, from, to string) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Del(ctx, RateKey(from, to), RateKey(to, from)).Err(); err != nil {
		c.logger.Warn("Rate cache invalidation failed", slog.String("from", from), slog.String("to", to), slog.String("error", err.Error()))
	}
}

// Healthy reports whether redis answers a ping.
func (c *RateCache) Healthy(ctx context.Context) bool {
	if !c.Enabled() {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(pingCtx).Err() == nil
}
