// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway wraps the resilient upstream client with optional
// read-through caching. Only Success payloads are cached; every failure
// is retried fresh on the next call, since upstream faults are assumed
// transient.
package gateway

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/catalog-gateway/internal/cache"
	"github.com/pdiddy/catalog-gateway/internal/upstream"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// Doer issues one logical upstream request. *upstream.Client implements
// it; tests substitute a recording fake.
type Doer interface {
	Do(ctx context.Context, req upstream.Request) upstream.Outcome
}

// Gateway is the cache-aware request facade. One instance is constructed
// per process and injected into every consumer.
type Gateway struct {
	client Doer
	cache  *cache.Cache
	ttl    time.Duration
	log    zerolog.Logger
}

// New builds a facade over client using c as the shared payload cache.
func New(client Doer, c *cache.Cache, cfg types.CacheConfig, log zerolog.Logger) *Gateway {
	if cfg.TTL <= 0 {
		cfg.TTL = types.DefaultTTL
	}
	return &Gateway{client: client, cache: c, ttl: cfg.TTL, log: log}
}

// Fetch resolves the request, serving cacheable requests from the cache
// when a live entry exists. On a miss the upstream outcome is returned
// as-is and, only on Success, stored under the canonical key.
func (g *Gateway) Fetch(ctx context.Context, req upstream.Request) upstream.Outcome {
	if !req.Cacheable {
		return g.client.Do(ctx, req)
	}

	key := req.CacheKey()
	if v, ok := g.cache.Get(key); ok {
		if payload, ok := v.([]byte); ok {
			g.log.Debug().Str("endpoint", req.Endpoint).Msg("cache hit")
			return upstream.Outcome{Status: upstream.StatusSuccess, Payload: payload}
		}
	}

	out := g.client.Do(ctx, req)
	if out.OK() {
		ttl := req.CacheTTL
		if ttl <= 0 {
			ttl = g.ttl
		}
		g.cache.Set(key, out.Payload, ttl)
	}
	return out
}

// Cache exposes the shared cache so composite builders can store their
// aggregates under dedicated keys with their own TTLs.
func (g *Gateway) Cache() *cache.Cache { return g.cache }
