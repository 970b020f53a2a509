//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package searcher fans the analyzed query out across every relevant
// (reformulation, source type) pair and merges the candidates into a single
// de-duplicated pool.
package searcher

import (
	"context"
	"math"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/openparl/parlrag/log"
	"github.com/openparl/parlrag/parl"
	"github.com/openparl/parlrag/parlcontext/query"
	"github.com/openparl/parlrag/store"
)

const (
	// minCandidatesPerQuery floors the per-sub-query budget so narrow global
	// budgets still produce a pool worth reranking.
	minCandidatesPerQuery = 20

	// maxPoolSize caps how many sub-queries run at once.
	maxPoolSize = 8
)

// MultiQuerySearcher issues one similarity search per (reformulation × source
// type) combination and merges the results.
type MultiQuerySearcher struct {
	vs       store.VectorSearcher
	poolSize int
}

// Option configures a MultiQuerySearcher.
type Option func(*MultiQuerySearcher)

// WithPoolSize sets the maximum number of concurrent sub-queries.
func WithPoolSize(n int) Option {
	return func(s *MultiQuerySearcher) {
		if n > 0 {
			s.poolSize = n
		}
	}
}

// New creates a MultiQuerySearcher over the given vector searcher.
func New(vs store.VectorSearcher, opts ...Option) *MultiQuerySearcher {
	s := &MultiQuerySearcher{
		vs:       vs,
		poolSize: maxPoolSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CandidatesPerQuery computes the per-sub-query candidate budget from the
// global candidate budget: half the global budget, floored at
// minCandidatesPerQuery to balance recall against reranking cost.
func CandidatesPerQuery(globalBudget int) int {
	perQuery := int(math.Ceil(float64(globalBudget) / 2))
	if perQuery < minCandidatesPerQuery {
		perQuery = minCandidatesPerQuery
	}
	return perQuery
}

// Search runs the full fan-out for the analysis and returns the merged,
// de-duplicated candidate pool. The pool is unranked beyond per-query
// similarity; ranking belongs to the reranker.
//
// Every sub-query runs concurrently and the call joins on all of them before
// merging. A failed sub-query contributes nothing; it never fails the pool.
func (s *MultiQuerySearcher) Search(
	ctx context.Context,
	analysis *query.Analysis,
	globalBudget int,
) []parl.SearchResult {
	queries := append([]string{analysis.Query}, analysis.Reformulations...)
	types := analysis.SearchTypes
	if len(types) == 0 || s.vs == nil {
		return nil
	}
	perQuery := CandidatesPerQuery(globalBudget)

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		log.Errorf("searcher: failed to create worker pool: %v", err)
		return nil
	}
	defer pool.Release()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	var collected []parl.SearchResult

	for _, q := range queries {
		for _, st := range types {
			q, st := q, st
			wg.Add(1)
			task := func() {
				defer wg.Done()
				results, err := s.vs.Search(ctx, st, q, perQuery)
				if err != nil {
					// Degrade: one failed corpus must not starve the others.
					log.Warnf("searcher: %s search failed for %q: %v", st, q, err)
					return
				}
				mu.Lock()
				collected = append(collected, results...)
				mu.Unlock()
			}
			if err := pool.Submit(task); err != nil {
				wg.Done()
				log.Warnf("searcher: failed to submit %s sub-query: %v", st, err)
			}
		}
	}
	wg.Wait()

	return dedupe(collected)
}

// dedupe collapses candidates that refer to the same document, keeping the
// higher-similarity instance. Identity is the SourceRef key, not content
// equality: the same document surfaces with different excerpts across
// reformulations.
func dedupe(results []parl.SearchResult) []parl.SearchResult {
	best := make(map[string]int, len(results))
	var out []parl.SearchResult
	for _, r := range results {
		key := r.Ref.Key()
		if idx, ok := best[key]; ok {
			if r.Similarity > out[idx].Similarity {
				out[idx] = r
			}
			continue
		}
		best[key] = len(out)
		out = append(out, r)
	}
	return out
}
