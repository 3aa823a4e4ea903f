package pricelists

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/multiprice-backend/pkg/logger"
	"github.com/angelmondragon/multiprice-backend/pkg/redis"
)

// PriceCache stores computed prices. Keys embed the pricelist and catalog
// versions, so bumping either version orphans every older entry.
type PriceCache interface {
	Key(ctx context.Context, pricelistID uuid.UUID, fingerprint string) (string, error)
	Get(ctx context.Context, key string) (CachedPrice, bool, error)
	Set(ctx context.Context, key string, entry CachedPrice) error
	InvalidatePricelist(ctx context.Context, pricelistID uuid.UUID) error
}

// CachedPrice is the stored outcome of one price request: the rounded price
// and the rule that produced it, if any.
type CachedPrice struct {
	Price  decimal.Decimal `json:"price"`
	ItemID *uuid.UUID      `json:"item_id,omitempty"`
}

func encodeCachedPrice(entry CachedPrice) (string, error) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("encoding cached price: %w", err)
	}
	return string(raw), nil
}

func decodeCachedPrice(raw string) (CachedPrice, error) {
	var entry CachedPrice
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return CachedPrice{}, fmt.Errorf("parsing cached price: %w", err)
	}
	return entry, nil
}

// RedisPriceCache is the redis-backed PriceCache.
type RedisPriceCache struct {
	client *redis.Client
	ttl    time.Duration
	logg   *logger.Logger
}

func NewRedisPriceCache(client *redis.Client, ttl time.Duration, logg *logger.Logger) *RedisPriceCache {
	return &RedisPriceCache{client: client, ttl: ttl, logg: logg}
}

func (c *RedisPriceCache) Key(ctx context.Context, pricelistID uuid.UUID, fingerprint string) (string, error) {
	pricelistVersion, err := c.client.Version(ctx, c.client.VersionKey("pricelist", pricelistID.String()))
	if err != nil {
		return "", err
	}
	catalogVersion, err := c.client.Version(ctx, c.client.VersionKey("catalog"))
	if err != nil {
		return "", err
	}
	version := fmt.Sprintf("v%d.%d", pricelistVersion, catalogVersion)
	return c.client.PriceKey(pricelistID.String(), version, fingerprint), nil
}

func (c *RedisPriceCache) Get(ctx context.Context, key string) (CachedPrice, bool, error) {
	raw, err := c.client.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		return CachedPrice{}, false, nil
	}
	if err != nil {
		return CachedPrice{}, false, err
	}
	entry, err := decodeCachedPrice(raw)
	if err != nil {
		return CachedPrice{}, false, err
	}
	return entry, true, nil
}

func (c *RedisPriceCache) Set(ctx context.Context, key string, entry CachedPrice) error {
	raw, err := encodeCachedPrice(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl)
}

func (c *RedisPriceCache) InvalidatePricelist(ctx context.Context, pricelistID uuid.UUID) error {
	_, err := c.client.BumpVersion(ctx, c.client.VersionKey("pricelist", pricelistID.String()))
	return err
}

// InvalidateCatalog orphans every cached price after product prices change.
// Failures are logged; stale entries still expire with the TTL.
func (c *RedisPriceCache) InvalidateCatalog(ctx context.Context) {
	if _, err := c.client.BumpVersion(ctx, c.client.VersionKey("catalog")); err != nil && c.logg != nil {
		c.logg.Error(ctx, "price cache catalog invalidation failed", err)
	}
}
