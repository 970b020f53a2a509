//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package redis provides the redis-backed result cache.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/openparl/parlrag/log"
	"github.com/openparl/parlrag/parlcontext/cache"
)

// Cache is a fail-open result cache backed by redis. Concurrent identical
// requests may overwrite the same key; writes are idempotent so no locking
// is needed.
type Cache struct {
	client goredis.UniversalClient
}

var _ cache.Cache = (*Cache)(nil)

// New creates a Cache over an existing redis client.
func New(client goredis.UniversalClient) *Cache {
	return &Cache{client: client}
}

// NewFromAddr creates a Cache connected to the given redis address.
func NewFromAddr(addr string) *Cache {
	return New(goredis.NewClient(&goredis.Options{Addr: addr}))
}

// Get implements cache.Cache. Backend errors are misses, never request
// errors.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	payload, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			log.Warnf("cache: get %s failed: %v", key, err)
		}
		return "", false
	}
	return payload, true
}

// Set implements cache.Cache. Failures are logged and swallowed so a cache
// outage never fails a request.
func (c *Cache) Set(ctx context.Context, key, payload string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		log.Warnf("cache: set %s failed: %v", key, err)
	}
}
