//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openparl/parlrag/parlcontext"
	"github.com/openparl/parlrag/store/inmemory"
)

func newDemoServer() *Server {
	fixtures := inmemory.Demo()
	cfg := parlcontext.DefaultConfig()
	cfg.CacheDisabled = true
	return NewServer(parlcontext.New(
		parlcontext.WithVectorSearcher(fixtures),
		parlcontext.WithStructuredStore(fixtures),
		parlcontext.WithDocumentHydrator(fixtures),
		parlcontext.WithConfig(cfg),
	))
}

func TestHandleGetContext(t *testing.T) {
	s := newDemoServer()

	_, out, err := s.handleGetContext(context.Background(), nil, ContextInput{
		Query: "What is Bill C-35 about?",
	})
	require.NoError(t, err)
	require.Equal(t, "en", out.Language)
	require.NotEmpty(t, out.Citations)
	require.Equal(t, "P1", out.Citations[0].DisplayID)
	require.Contains(t, out.Prompt, "[P1]")
}

func TestHandleGetContextEnumeration(t *testing.T) {
	s := newDemoServer()

	_, out, err := s.handleGetContext(context.Background(), nil, ContextInput{
		Query: "Who voted for Bill C-35?",
		Limit: 5,
	})
	require.NoError(t, err)
	require.Len(t, out.Citations, 1)
	require.Contains(t, out.Citations[0].Title, "C-35")
	require.Contains(t, out.Prompt, "Jane Doe")
}

func TestHandleGetContextEmptyQuery(t *testing.T) {
	s := newDemoServer()

	_, _, err := s.handleGetContext(context.Background(), nil, ContextInput{Query: "  "})
	require.ErrorIs(t, err, parlcontext.ErrEmptyQuery)
}
