//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package postgres answers enumeration and hydration queries from the
// relational parliamentary database.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	// Registers the pgx stdlib driver under the "pgx" name.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ClientBuilderOpts holds the assembled options for building a client.
type ClientBuilderOpts struct {
	// ConnString is the PostgreSQL connection string.
	ConnString string
	// ExtraOptions carries builder-specific options for custom builders.
	ExtraOptions []any
}

// ClientBuilderOpt configures ClientBuilderOpts.
type ClientBuilderOpt func(*ClientBuilderOpts)

// WithClientConnString sets the connection string.
func WithClientConnString(connString string) ClientBuilderOpt {
	return func(o *ClientBuilderOpts) { o.ConnString = connString }
}

// WithExtraOptions appends extra options for custom builders.
func WithExtraOptions(extra ...any) ClientBuilderOpt {
	return func(o *ClientBuilderOpts) {
		o.ExtraOptions = append(o.ExtraOptions, extra...)
	}
}

// ClientBuilder builds a database handle from options.
type ClientBuilder func(ctx context.Context, opts ...ClientBuilderOpt) (*sql.DB, error)

// DefaultClientBuilder opens a database/sql handle over the pgx stdlib
// driver and verifies connectivity.
func DefaultClientBuilder(ctx context.Context, opts ...ClientBuilderOpt) (*sql.DB, error) {
	o := &ClientBuilderOpts{}
	for _, opt := range opts {
		opt(o)
	}
	if o.ConnString == "" {
		return nil, errors.New("postgres: connection string is empty")
	}
	db, err := sql.Open("pgx", o.ConnString)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening database failed: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}
	return db, nil
}

var (
	builderMu     sync.RWMutex
	clientBuilder ClientBuilder = DefaultClientBuilder

	registryMu       sync.RWMutex
	postgresRegistry = make(map[string][]ClientBuilderOpt)
)

// SetClientBuilder replaces the global client builder.
func SetClientBuilder(b ClientBuilder) {
	builderMu.Lock()
	defer builderMu.Unlock()
	clientBuilder = b
}

// GetClientBuilder returns the global client builder.
func GetClientBuilder() ClientBuilder {
	builderMu.RLock()
	defer builderMu.RUnlock()
	return clientBuilder
}

// RegisterPostgresInstance registers builder options under a named instance.
// Repeated calls for the same name append options.
func RegisterPostgresInstance(name string, opts ...ClientBuilderOpt) {
	registryMu.Lock()
	defer registryMu.Unlock()
	postgresRegistry[name] = append(postgresRegistry[name], opts...)
}

// GetPostgresInstance returns the options registered under name.
func GetPostgresInstance(name string) ([]ClientBuilderOpt, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	opts, ok := postgresRegistry[name]
	return opts, ok
}
