//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package topk provides a reranker that keeps the pool's similarity order and
// truncates it. Useful as a cheap baseline and in deterministic tests.
package topk

import (
	"context"
	"sort"

	"github.com/openparl/parlrag/parl"
)

// Reranker orders candidates by their original similarity score only.
type Reranker struct{}

// New creates a top-K reranker.
func New() *Reranker {
	return &Reranker{}
}

// Rerank implements reranker.Reranker.
func (r *Reranker) Rerank(
	_ context.Context, _ string, results []parl.SearchResult, limit int,
) ([]parl.SearchResult, error) {
	out := make([]parl.SearchResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
