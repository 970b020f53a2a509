//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package reranker provides result re-ranking for the retrieval pipeline.
package reranker

import (
	"context"

	"github.com/openparl/parlrag/parl"
)

// Reranker re-orders a merged candidate pool against the original query.
//
// This is the only stage that scores the original (non-reformulated) query
// text against every candidate; reformulations exist purely to grow the
// pool, never to bias final ranking.
type Reranker interface {
	// Rerank returns the candidates in relevance order, at most limit long.
	Rerank(ctx context.Context, originalQuery string, results []parl.SearchResult, limit int) ([]parl.SearchResult, error)
}
