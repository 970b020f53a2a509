//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package cache defines the result cache contract and the content-addressed
// key scheme for assembled context results.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// keyVersion namespaces cache keys so result-format changes never collide
// with stale entries. Bump it whenever the ContextResult JSON shape changes.
const keyVersion = 2

// Key returns the content-addressed cache key for (query, boundedLimit).
// It is stable across process restarts and not session- or user-scoped.
func Key(query string, boundedLimit int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", query, boundedLimit)))
	return fmt.Sprintf("ctx:v%d:%s", keyVersion, hex.EncodeToString(sum[:]))
}

// Cache stores serialized context results. Implementations must be fail-open:
// a backend error on Get is a miss, and a backend error on Set is logged and
// swallowed. Writes for identical keys are idempotent; last write wins.
type Cache interface {
	// Get returns the cached payload for key, or ok=false on miss (including
	// any backend failure).
	Get(ctx context.Context, key string) (payload string, ok bool)

	// Set stores the payload under key with the given TTL.
	Set(ctx context.Context, key, payload string, ttl time.Duration)
}

// Noop is a Cache that stores nothing. Used when caching is disabled.
type Noop struct{}

// Get implements Cache.
func (Noop) Get(context.Context, string) (string, bool) { return "", false }

// Set implements Cache.
func (Noop) Set(context.Context, string, string, time.Duration) {}
