//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewFromAddr(mr.Addr()), mr
}

func TestSetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "ctx:v2:abc", `{"language":"en"}`, time.Minute)
	payload, ok := c.Get(ctx, "ctx:v2:abc")
	require.True(t, ok)
	require.Equal(t, `{"language":"en"}`, payload)
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)
	_, ok := c.Get(context.Background(), "ctx:v2:missing")
	require.False(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", "v", time.Minute)
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "k")
	require.False(t, ok)
}

func TestLastWriteWins(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", "first", time.Minute)
	c.Set(ctx, "k", "second", time.Minute)
	payload, ok := c.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, "second", payload)
}

func TestGetFailOpenOnBackendDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, ok := c.Get(context.Background(), "k")
	require.False(t, ok, "backend failure must read as a miss")

	// Set must swallow the failure too.
	c.Set(context.Background(), "k", "v", time.Minute)
}
