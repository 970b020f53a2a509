//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package lexical provides a cross-encoder style reranker that scores each
// candidate's content directly against the original query using accent-folded
// token overlap.
package lexical

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/openparl/parlrag/parl"
)

// defaultMaxPool bounds how many candidates are scored; candidates past the
// bound keep their pool order behind the scored ones.
const defaultMaxPool = 50

// Reranker scores candidates by normalized query-token overlap, breaking
// ties with the candidate's original similarity score.
type Reranker struct {
	maxPool int
}

// Option configures the lexical reranker.
type Option func(*Reranker)

// WithMaxPool bounds the number of candidates that get scored.
func WithMaxPool(n int) Option {
	return func(r *Reranker) {
		if n > 0 {
			r.maxPool = n
		}
	}
}

// New creates a lexical reranker.
func New(opts ...Option) *Reranker {
	r := &Reranker{
		maxPool: defaultMaxPool,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var accentFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func foldTokens(s string) map[string]bool {
	folded, _, err := transform.String(accentFolder, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	toks := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	set := make(map[string]bool, len(toks))
	for _, t := range toks {
		set[t] = true
	}
	return set
}

// score returns the fraction of query tokens present in the content.
func score(queryTokens map[string]bool, content string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}
	contentTokens := foldTokens(content)
	var hits int
	for t := range queryTokens {
		if contentTokens[t] {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTokens))
}

// Rerank implements reranker.Reranker.
func (r *Reranker) Rerank(
	_ context.Context, originalQuery string, results []parl.SearchResult, limit int,
) ([]parl.SearchResult, error) {
	pool := results
	var tail []parl.SearchResult
	if len(pool) > r.maxPool {
		pool, tail = pool[:r.maxPool], pool[r.maxPool:]
	}

	queryTokens := foldTokens(originalQuery)

	type scored struct {
		result parl.SearchResult
		score  float64
	}
	scoredPool := make([]scored, len(pool))
	for i, res := range pool {
		scoredPool[i] = scored{result: res, score: score(queryTokens, res.Content)}
	}
	sort.SliceStable(scoredPool, func(i, j int) bool {
		if scoredPool[i].score != scoredPool[j].score {
			return scoredPool[i].score > scoredPool[j].score
		}
		// Ties fall back to the candidate's original similarity.
		return scoredPool[i].result.Similarity > scoredPool[j].result.Similarity
	})

	out := make([]parl.SearchResult, 0, len(results))
	for _, s := range scoredPool {
		out = append(out, s.result)
	}
	out = append(out, tail...)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
