//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openparl/parlrag/parl"
)

func TestSearchScoresByTokenOverlap(t *testing.T) {
	s := Demo()

	results, err := s.Search(context.Background(), parl.SourceBill, "child care bill C-35", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, parl.SourceBill, results[0].Ref.Type)
	require.Positive(t, results[0].Similarity)
}

func TestSearchOmitsZeroOverlap(t *testing.T) {
	s := Demo()

	results, err := s.Search(context.Background(), parl.SourceBill, "zebra migration patterns", 10)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearchRespectsLimit(t *testing.T) {
	s := New()
	for i := 1; i <= 5; i++ {
		s.AddExcerpt(parl.SearchResult{
			Content: "housing bill",
			Ref:     parl.SourceRef{Type: parl.SourceBill, Bill: &parl.BillRef{BillID: i}},
		})
	}

	results, err := s.Search(context.Background(), parl.SourceBill, "housing bill", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
}

func TestCompleteMemberVotesFilters(t *testing.T) {
	s := Demo()
	ctx := context.Background()

	all, err := s.CompleteMemberVotesForBill(ctx, "c-35", "", "", parl.LanguageEN)
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Len(t, all.Ballots, 3)

	yea, err := s.CompleteMemberVotesForBill(ctx, "C-35", parl.BallotYea, "", parl.LanguageEN)
	require.NoError(t, err)
	require.Len(t, yea.Ballots, 2)

	ndpYea, err := s.CompleteMemberVotesForBill(ctx, "C-35", parl.BallotYea, "ndp", parl.LanguageEN)
	require.NoError(t, err)
	require.Len(t, ndpYea.Ballots, 1)
	require.Equal(t, "John Roe", ndpYea.Ballots[0].PoliticianName)

	missing, err := s.CompleteMemberVotesForBill(ctx, "C-999", "", "", parl.LanguageEN)
	require.NoError(t, err)
	require.Nil(t, missing, "unknown bill reads as data absence, not error")
}

func TestAllPoliticiansPartyFilter(t *testing.T) {
	s := Demo()
	ctx := context.Background()

	all, err := s.AllPoliticians(ctx, "", true, parl.LanguageEN)
	require.NoError(t, err)
	require.Len(t, all.Members, 3)

	liberals, err := s.AllPoliticians(ctx, "liberal", true, parl.LanguageEN)
	require.NoError(t, err)
	require.Len(t, liberals.Members, 1)

	none, err := s.AllPoliticians(ctx, "no-such-party", true, parl.LanguageEN)
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestHydrateMarkdownLanguageFallback(t *testing.T) {
	s := Demo()
	ctx := context.Background()

	billRef := parl.SourceRef{Type: parl.SourceBill, Bill: &parl.BillRef{BillID: 12}}
	fr, err := s.HydrateMarkdown(ctx, billRef, parl.LanguageFR)
	require.NoError(t, err)
	require.Equal(t, parl.LanguageFR, fr.LanguageUsed)
	require.Empty(t, fr.Note)

	// The vote document only exists in English; a French request substitutes
	// it with a disclosure note.
	voteRef := parl.SourceRef{Type: parl.SourceVote, Vote: &parl.VoteRef{VoteQuestionID: 7}}
	sub, err := s.HydrateMarkdown(ctx, voteRef, parl.LanguageFR)
	require.NoError(t, err)
	require.Equal(t, parl.LanguageEN, sub.LanguageUsed)
	require.NotEmpty(t, sub.Note)

	missing, err := s.HydrateMarkdown(ctx, parl.SourceRef{Type: parl.SourceDebate}, parl.LanguageEN)
	require.NoError(t, err)
	require.Nil(t, missing)
}
