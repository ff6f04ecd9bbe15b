package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appsettings "github.com/servex/backend/internal/application/settings"
	"github.com/servex/backend/internal/domain/settings"
)

const currencyKeyPrefix = "settings:currencies:"

// RedisCurrencyCache caches per-tenant currency tables in Redis.
// All operations fail open: a Redis outage degrades to direct reads,
// it never fails a request.
type RedisCurrencyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCurrencyCache creates a currency cache with the given TTL.
func NewRedisCurrencyCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCurrencyCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCurrencyCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func currencyKey(tenantID uuid.UUID) string {
	return currencyKeyPrefix + tenantID.String()
}

// Get returns the cached currency table for a tenant, if present.
func (c *RedisCurrencyCache) Get(ctx context.Context, tenantID uuid.UUID) (settings.CurrencyList, bool) {
	payload, err := c.client.Get(ctx, currencyKey(tenantID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("currency cache read failed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
		return nil, false
	}

	var currencies settings.CurrencyList
	if err := json.Unmarshal(payload, &currencies); err != nil {
		c.logger.Warn("currency cache entry corrupt, dropping",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		c.Invalidate(ctx, tenantID)
		return nil, false
	}

	return currencies, true
}

// Set stores the currency table for a tenant.
func (c *RedisCurrencyCache) Set(ctx context.Context, tenantID uuid.UUID, currencies settings.CurrencyList) {
	payload, err := json.Marshal(currencies)
	if err != nil {
		c.logger.Warn("currency cache encode failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		return
	}

	if err := c.client.Set(ctx, currencyKey(tenantID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("currency cache write failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}

// Invalidate drops the cached currency table for a tenant.
func (c *RedisCurrencyCache) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	if err := c.client.Del(ctx, currencyKey(tenantID)).Err(); err != nil {
		c.logger.Warn("currency cache invalidation failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}

var _ appsettings.CurrencyCache = (*RedisCurrencyCache)(nil)
