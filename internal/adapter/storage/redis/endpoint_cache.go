package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"webhook-gateway/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// EndpointCache implements ports.EndpointCache.
// All event types live as fields of one hash so a registry mutation
// can drop every resolution with a single DEL.
type EndpointCache struct {
	client goredis.UniversalClient
	key    string
}

// NewEndpointCache creates a new Redis-backed endpoint resolution cache.
func NewEndpointCache(client goredis.UniversalClient) *EndpointCache {
	return &EndpointCache{
		client: client,
		key:    keyPrefix + "endpoints:by_event",
	}
}

// Get returns the cached endpoints for eventType. ok is false on a miss.
func (c *EndpointCache) Get(ctx context.Context, eventType string) ([]domain.Endpoint, bool, error) {
	raw, err := c.client.HGet(ctx, c.key, eventType).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis endpoint cache get: %w", err)
	}

	var endpoints []domain.Endpoint
	if err := json.Unmarshal(raw, &endpoints); err != nil {
		return nil, false, fmt.Errorf("decode cached endpoints: %w", err)
	}
	return endpoints, true, nil
}

// Set stores the resolution for eventType. The TTL applies to the whole hash.
func (c *EndpointCache) Set(ctx context.Context, eventType string, endpoints []domain.Endpoint, ttl time.Duration) error {
	if endpoints == nil {
		endpoints = []domain.Endpoint{}
	}
	raw, err := json.Marshal(endpoints)
	if err != nil {
		return fmt.Errorf("encode endpoints: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, c.key, eventType, raw)
	if ttl > 0 {
		pipe.Expire(ctx, c.key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis endpoint cache set: %w", err)
	}
	return nil
}

// Invalidate drops every cached resolution.
func (c *EndpointCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis endpoint cache invalidate: %w", err)
	}
	return nil
}
