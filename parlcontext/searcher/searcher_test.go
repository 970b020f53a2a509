//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package searcher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openparl/parlrag/parl"
	"github.com/openparl/parlrag/parlcontext/query"
)

// fakeVectorSearcher records calls and serves canned results per source type.
type fakeVectorSearcher struct {
	mu      sync.Mutex
	calls   []string
	results map[parl.SourceType][]parl.SearchResult
	failOn  parl.SourceType
}

func (f *fakeVectorSearcher) Search(
	_ context.Context, st parl.SourceType, queryText string, limit int,
) ([]parl.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, string(st)+"|"+queryText)
	f.mu.Unlock()
	if st == f.failOn {
		return nil, errors.New("backend unavailable")
	}
	results := f.results[st]
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func billResult(id int, similarity float64) parl.SearchResult {
	return parl.SearchResult{
		Content:    "excerpt",
		Ref:        parl.SourceRef{Type: parl.SourceBill, Bill: &parl.BillRef{BillID: id}},
		Similarity: similarity,
	}
}

func TestCandidatesPerQuery(t *testing.T) {
	require.Equal(t, 20, CandidatesPerQuery(10))
	require.Equal(t, 20, CandidatesPerQuery(40))
	require.Equal(t, 25, CandidatesPerQuery(50))
	require.Equal(t, 50, CandidatesPerQuery(100))
	require.Equal(t, 20, CandidatesPerQuery(0))
}

func TestSearchFansOutPerReformulationAndType(t *testing.T) {
	fake := &fakeVectorSearcher{results: map[parl.SourceType][]parl.SearchResult{}}
	s := New(fake)

	analysis := &query.Analysis{
		Query:          "bill C-35",
		Reformulations: []string{"r1", "r2"},
		SearchTypes:    []parl.SourceType{parl.SourceBill, parl.SourceVote},
	}
	s.Search(context.Background(), analysis, 10)

	// (1 original + 2 reformulations) x 2 types.
	require.Len(t, fake.calls, 6)
}

func TestSearchDeduplicatesKeepingHigherSimilarity(t *testing.T) {
	fake := &fakeVectorSearcher{results: map[parl.SourceType][]parl.SearchResult{
		parl.SourceBill: {billResult(1, 0.60), billResult(2, 0.40)},
	}}
	s := New(fake)

	analysis := &query.Analysis{
		Query:          "bill C-35",
		Reformulations: []string{"r1"},
		SearchTypes:    []parl.SourceType{parl.SourceBill},
	}
	got := s.Search(context.Background(), analysis, 10)

	// Two sub-queries each returned bill:1 and bill:2; one instance of each
	// must survive.
	require.Len(t, got, 2)
	keys := map[string]bool{}
	for _, r := range got {
		keys[r.Ref.Key()] = true
	}
	require.True(t, keys["bill:1"])
	require.True(t, keys["bill:2"])
}

func TestDedupeKeepsHigherSimilarityInstance(t *testing.T) {
	got := dedupe([]parl.SearchResult{
		billResult(1, 0.3),
		billResult(1, 0.9),
		billResult(1, 0.5),
	})
	require.Len(t, got, 1)
	require.Equal(t, 0.9, got[0].Similarity)
}

func TestSearchDegradesOnFailingType(t *testing.T) {
	fake := &fakeVectorSearcher{
		results: map[parl.SourceType][]parl.SearchResult{
			parl.SourceBill: {billResult(1, 0.8)},
		},
		failOn: parl.SourceVote,
	}
	s := New(fake)

	analysis := &query.Analysis{
		Query:       "bill C-35",
		SearchTypes: []parl.SourceType{parl.SourceBill, parl.SourceVote},
	}
	got := s.Search(context.Background(), analysis, 10)

	require.Len(t, got, 1)
	require.Equal(t, "bill:1", got[0].Ref.Key())
}

func TestSearchEmptyTypes(t *testing.T) {
	fake := &fakeVectorSearcher{}
	s := New(fake)
	got := s.Search(context.Background(), &query.Analysis{Query: "q"}, 10)
	require.Empty(t, got)
	require.Empty(t, fake.calls)
}
