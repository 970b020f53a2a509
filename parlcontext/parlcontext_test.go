//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package parlcontext

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openparl/parlrag/parl"
	"github.com/openparl/parlrag/parlcontext/cache"
	"github.com/openparl/parlrag/store"
)

// fakeVS returns the same hit list for every sub-query; the searcher's
// dedupe collapses the repeats. Hits carry distinct similarities so ranking
// is total and runs are reproducible.
type fakeVS struct {
	mu    sync.Mutex
	calls int
	hits  []parl.SearchResult
	err   error
}

func (f *fakeVS) Search(
	_ context.Context, _ parl.SourceType, _ string, _ int,
) ([]parl.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.hits, f.err
}

func (f *fakeVS) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeStructured struct {
	votes  *parl.VoteEnumeration
	roster *parl.PoliticianRoster
	err    error
}

func (f *fakeStructured) CompleteMemberVotesForBill(
	_ context.Context, _, _, _, _ string,
) (*parl.VoteEnumeration, error) {
	return f.votes, f.err
}

func (f *fakeStructured) AllPoliticians(
	_ context.Context, _ string, _ bool, _ string,
) (*parl.PoliticianRoster, error) {
	return f.roster, f.err
}

type fakeDocs struct {
	doc *store.HydratedDoc
	err error
}

func (f *fakeDocs) HydrateMarkdown(
	_ context.Context, _ parl.SourceRef, _ string,
) (*store.HydratedDoc, error) {
	return f.doc, f.err
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	sets []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.data[key]
	return payload, ok
}

func (c *fakeCache) Set(_ context.Context, key, payload string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = payload
	c.sets = append(c.sets, key)
}

type failingReranker struct{}

func (failingReranker) Rerank(
	_ context.Context, _ string, _ []parl.SearchResult, _ int,
) ([]parl.SearchResult, error) {
	return nil, errors.New("scoring backend unavailable")
}

func billHit(id int, number string, sim float64) parl.SearchResult {
	return parl.SearchResult{
		Content:    "Excerpt of Bill " + number,
		Ref:        parl.SourceRef{Type: parl.SourceBill, Bill: &parl.BillRef{BillID: id, Number: number, Session: "44-1"}},
		Similarity: sim,
		Citation: parl.Citation{
			SourceType: parl.SourceBill,
			TitleEN:    "Bill " + number,
			TitleFR:    "Projet de loi " + number,
			URLEN:      parl.BillURL(parl.LanguageEN, "44-1", number),
			URLFR:      parl.BillURL(parl.LanguageFR, "44-1", number),
		},
	}
}

func voteHit(qid, num int, sim float64) parl.SearchResult {
	return parl.SearchResult{
		Content:    "Vote excerpt",
		Ref:        parl.SourceRef{Type: parl.SourceVote, Vote: &parl.VoteRef{VoteQuestionID: qid, VoteNumber: num, Session: "44-1"}},
		Similarity: sim,
		Citation:   parl.Citation{SourceType: parl.SourceVote, TitleEN: "Vote"},
	}
}

func committeeHit(sim float64) parl.SearchResult {
	return parl.SearchResult{
		Content:    "Committee excerpt",
		Ref:        parl.SourceRef{Type: parl.SourceCommittee, Committee: &parl.CommitteeRef{Slug: "finance"}},
		Similarity: sim,
		Citation:   parl.Citation{SourceType: parl.SourceCommittee, TitleEN: "Standing Committee on Finance"},
	}
}

func TestEmptyQueryRejected(t *testing.T) {
	p := New(WithVectorSearcher(&fakeVS{}))

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := p.GetParliamentContext(context.Background(), q, 5)
		require.ErrorIs(t, err, ErrEmptyQuery)
	}
}

func TestEndToEndBillQuery(t *testing.T) {
	vs := &fakeVS{hits: []parl.SearchResult{
		billHit(12, "C-35", 0.91),
		voteHit(7, 412, 0.80),
		committeeHit(0.75),
	}}
	c := newFakeCache()
	p := New(
		WithVectorSearcher(vs),
		WithDocumentHydrator(&fakeDocs{doc: &store.HydratedDoc{Markdown: "# Bill C-35", LanguageUsed: "en"}}),
		WithCache(c),
	)

	res, err := p.GetParliamentContext(context.Background(), "What is Bill C-35 about?", 5)
	require.NoError(t, err)
	require.Equal(t, parl.LanguageEN, res.Language)

	// Bill intent allows bills, votes, and statements; the committee hit must
	// not surface.
	allowed := parl.AllowedSourceTypes(parl.IntentBill)
	require.Len(t, res.Citations, 2)
	for i, cit := range res.Citations {
		require.Equal(t, i+1, cit.ID, "citation ids must be contiguous from 1")
		require.Equal(t, fmt.Sprintf("P%d", i+1), cit.DisplayID)
		require.True(t, allowed[cit.SourceType], "citation %d type %s outside intent allow-list", cit.ID, cit.SourceType)
	}

	require.Contains(t, res.Prompt, "[P1]")
	require.Contains(t, res.Prompt, "Bill C-35")

	// One hydrated document per distinct surviving type, at most.
	require.LessOrEqual(t, len(res.HydratedSources), 2)
	require.NotEmpty(t, res.HydratedSources)

	require.NotEmpty(t, c.sets, "assembled result must be cached")
}

func TestCacheHitSkipsCollaborators(t *testing.T) {
	vs := &fakeVS{hits: []parl.SearchResult{billHit(12, "C-35", 0.91)}}
	c := newFakeCache()
	p := New(WithVectorSearcher(vs), WithCache(c))
	ctx := context.Background()

	first, err := p.GetParliamentContext(ctx, "What is Bill C-35 about?", 5)
	require.NoError(t, err)
	callsAfterFirst := vs.callCount()
	require.Positive(t, callsAfterFirst)

	second, err := p.GetParliamentContext(ctx, "What is Bill C-35 about?", 5)
	require.NoError(t, err)
	require.Equal(t, callsAfterFirst, vs.callCount(), "a cache hit must not touch the search backend")
	require.Equal(t, first, second)
}

func TestMalformedCachePayloadIsMiss(t *testing.T) {
	vs := &fakeVS{hits: []parl.SearchResult{billHit(12, "C-35", 0.91)}}
	c := newFakeCache()
	query := "What is Bill C-35 about?"
	c.data[cache.Key(query, 5)] = `{"language": truncated`

	p := New(WithVectorSearcher(vs), WithCache(c))
	res, err := p.GetParliamentContext(context.Background(), query, 5)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Positive(t, vs.callCount(), "malformed payload must fall through to the full pipeline")
	require.NotEmpty(t, c.sets, "the fresh result must overwrite the bad entry")
}

func TestLimitClamping(t *testing.T) {
	query := "What is Bill C-35 about?"
	cases := []struct {
		name    string
		limit   int
		bounded int
	}{
		{"default applied", 0, DefaultLimit},
		{"negative takes default", -3, DefaultLimit},
		{"above max clamped", 500, DefaultMaxLimit},
		{"in range untouched", 7, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newFakeCache()
			p := New(WithVectorSearcher(&fakeVS{}), WithCache(c))

			_, err := p.GetParliamentContext(context.Background(), query, tc.limit)
			require.NoError(t, err)
			require.Equal(t, []string{cache.Key(query, tc.bounded)}, c.sets)
		})
	}
}

func TestLimitTruncatesCitations(t *testing.T) {
	hits := []parl.SearchResult{
		billHit(1, "C-31", 0.95),
		billHit(2, "C-32", 0.90),
		billHit(3, "C-33", 0.85),
		billHit(4, "C-34", 0.80),
		billHit(5, "C-35", 0.75),
	}
	p := New(
		WithVectorSearcher(&fakeVS{hits: hits}),
		WithConfig(func() Config {
			cfg := DefaultConfig()
			cfg.CacheDisabled = true
			return cfg
		}()),
	)

	res, err := p.GetParliamentContext(context.Background(), "recent bills about housing", 3)
	require.NoError(t, err)
	require.Len(t, res.Citations, 3)
	require.Equal(t, "P3", res.Citations[2].DisplayID)
}

func TestEnumerationShortCircuit(t *testing.T) {
	vs := &fakeVS{hits: []parl.SearchResult{billHit(12, "C-35", 0.91)}}
	c := newFakeCache()
	p := New(
		WithVectorSearcher(vs),
		WithStructuredStore(&fakeStructured{votes: &parl.VoteEnumeration{
			BillNumber:     "C-35",
			VoteQuestionID: 7,
			VoteNumber:     412,
			Session:        "44-1",
			Date:           "2023-06-19",
			ResultEN:       "Passed",
			Ballots: []parl.MemberBallot{
				{PoliticianName: "Jane Doe", PartySlug: "liberal", Ballot: parl.BallotYea},
			},
			YeaTotal: 177,
			NayTotal: 64,
		}}),
		WithCache(c),
	)

	res, err := p.GetParliamentContext(context.Background(), "Who voted for Bill C-35?", 5)
	require.NoError(t, err)
	require.Len(t, res.Citations, 1)
	require.Equal(t, "P1", res.Citations[0].DisplayID)
	require.Contains(t, res.Prompt, "Jane Doe")
	require.Zero(t, vs.callCount(), "a successful enumeration must not search")
	require.NotEmpty(t, c.sets, "enumeration results are cached like any other")
}

func TestEnumerationFallbackRunsSearch(t *testing.T) {
	vs := &fakeVS{hits: []parl.SearchResult{voteHit(7, 412, 0.88)}}
	p := New(
		WithVectorSearcher(vs),
		WithStructuredStore(&fakeStructured{votes: nil}),
		WithConfig(func() Config {
			cfg := DefaultConfig()
			cfg.CacheDisabled = true
			return cfg
		}()),
	)

	res, err := p.GetParliamentContext(context.Background(), "Who voted for Bill C-35?", 5)
	require.NoError(t, err)
	require.Positive(t, vs.callCount(), "fallback must derive a search plan and run it")
	require.Len(t, res.Citations, 1)
	require.Equal(t, parl.SourceVote, res.Citations[0].SourceType)
}

func TestRerankFailureKeepsPoolOrder(t *testing.T) {
	p := New(
		WithVectorSearcher(&fakeVS{hits: []parl.SearchResult{billHit(12, "C-35", 0.91)}}),
		WithReranker(failingReranker{}),
		WithConfig(func() Config {
			cfg := DefaultConfig()
			cfg.CacheDisabled = true
			return cfg
		}()),
	)

	res, err := p.GetParliamentContext(context.Background(), "What is Bill C-35 about?", 5)
	require.NoError(t, err, "a reranker fault must degrade, not fail the request")
	require.Len(t, res.Citations, 1)
}

func TestFrenchLanguagePropagation(t *testing.T) {
	p := New(
		WithVectorSearcher(&fakeVS{hits: []parl.SearchResult{billHit(12, "C-35", 0.91)}}),
		WithConfig(func() Config {
			cfg := DefaultConfig()
			cfg.CacheDisabled = true
			return cfg
		}()),
	)

	res, err := p.GetParliamentContext(context.Background(), "Quel est le projet de loi C-35 ?", 5)
	require.NoError(t, err)
	require.Equal(t, parl.LanguageFR, res.Language)
	require.Contains(t, res.Prompt, "Projet de loi C-35")
}

func TestIdempotentWithCacheDisabled(t *testing.T) {
	hits := []parl.SearchResult{
		billHit(1, "C-31", 0.95),
		billHit(2, "C-32", 0.90),
		voteHit(7, 412, 0.85),
	}
	p := New(
		WithVectorSearcher(&fakeVS{hits: hits}),
		WithConfig(func() Config {
			cfg := DefaultConfig()
			cfg.CacheDisabled = true
			return cfg
		}()),
	)
	ctx := context.Background()

	first, err := p.GetParliamentContext(ctx, "What is Bill C-35 about?", 5)
	require.NoError(t, err)
	second, err := p.GetParliamentContext(ctx, "What is Bill C-35 about?", 5)
	require.NoError(t, err)
	require.Equal(t, first, second, "identical inputs must assemble identical output")
}

func TestSearchFailureYieldsEmptyResult(t *testing.T) {
	p := New(
		WithVectorSearcher(&fakeVS{err: errors.New("index offline")}),
		WithConfig(func() Config {
			cfg := DefaultConfig()
			cfg.CacheDisabled = true
			return cfg
		}()),
	)

	res, err := p.GetParliamentContext(context.Background(), "What is Bill C-35 about?", 5)
	require.NoError(t, err, "backend faults degrade to an empty result, never an error")
	require.Empty(t, res.Citations)
	require.Empty(t, res.HydratedSources)
}
