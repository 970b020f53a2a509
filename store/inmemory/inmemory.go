//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package inmemory backs the pipeline's collaborator contracts with fixture
// data held in process memory. It exists for tests and for running the demo
// command without a database; scoring is lexical, not vector-based.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/openparl/parlrag/parl"
	"github.com/openparl/parlrag/store"
)

// Store holds fixture excerpts, vote enumerations, rosters, and canonical
// documents. The zero value is not usable; construct with New.
type Store struct {
	mu       sync.RWMutex
	excerpts map[parl.SourceType][]parl.SearchResult
	votes    map[string]*parl.VoteEnumeration
	roster   *parl.PoliticianRoster
	docs     map[string]map[string]store.HydratedDoc
}

var (
	_ store.VectorSearcher   = (*Store)(nil)
	_ store.StructuredStore  = (*Store)(nil)
	_ store.DocumentHydrator = (*Store)(nil)
)

// New creates an empty Store.
func New() *Store {
	return &Store{
		excerpts: make(map[parl.SourceType][]parl.SearchResult),
		votes:    make(map[string]*parl.VoteEnumeration),
		docs:     make(map[string]map[string]store.HydratedDoc),
	}
}

// AddExcerpt registers a searchable excerpt under its source type.
func (s *Store) AddExcerpt(r parl.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excerpts[r.Ref.Type] = append(s.excerpts[r.Ref.Type], r)
}

// AddVoteEnumeration registers the complete ballot set for a bill number.
func (s *Store) AddVoteEnumeration(ve *parl.VoteEnumeration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[strings.ToUpper(ve.BillNumber)] = ve
}

// SetRoster registers the full member roster.
func (s *Store) SetRoster(r *parl.PoliticianRoster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = r
}

// AddDocument registers the canonical markdown for a source in one language.
func (s *Store) AddDocument(ref parl.SourceRef, lang, markdown string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ref.Key()
	if s.docs[key] == nil {
		s.docs[key] = make(map[string]store.HydratedDoc)
	}
	s.docs[key][lang] = store.HydratedDoc{Markdown: markdown, LanguageUsed: lang}
}

func tokens(s string) map[string]bool {
	out := make(map[string]bool)
	for _, t := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	}) {
		out[t] = true
	}
	return out
}

// Search implements store.VectorSearcher with token-overlap scoring: the
// similarity of an excerpt is the fraction of query tokens it contains.
// Zero-overlap excerpts are omitted. Ties break on the excerpt's fixture
// order, so results are reproducible.
func (s *Store) Search(
	_ context.Context, sourceType parl.SourceType, queryText string, limit int,
) ([]parl.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qTokens := tokens(queryText)
	if len(qTokens) == 0 {
		return nil, nil
	}

	var scored []parl.SearchResult
	for _, r := range s.excerpts[sourceType] {
		cTokens := tokens(r.Content + " " + r.Citation.TitleEN + " " + r.Citation.TitleFR)
		hits := 0
		for t := range qTokens {
			if cTokens[t] {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		r.Similarity = float64(hits) / float64(len(qTokens))
		scored = append(scored, r)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// CompleteMemberVotesForBill implements store.StructuredStore against the
// fixture ballots, applying the optional ballot-value and party filters.
func (s *Store) CompleteMemberVotesForBill(
	_ context.Context, billNumber, voteType, partySlug, _ string,
) (*parl.VoteEnumeration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ve, ok := s.votes[strings.ToUpper(billNumber)]
	if !ok {
		return nil, nil
	}

	out := *ve
	out.Ballots = nil
	for _, b := range ve.Ballots {
		if voteType != "" && b.Ballot != voteType {
			continue
		}
		if partySlug != "" && b.PartySlug != partySlug {
			continue
		}
		out.Ballots = append(out.Ballots, b)
	}
	return &out, nil
}

// AllPoliticians implements store.StructuredStore against the fixture roster.
func (s *Store) AllPoliticians(
	_ context.Context, partySlug string, currentOnly bool, _ string,
) (*parl.PoliticianRoster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.roster == nil {
		return nil, nil
	}
	out := parl.PoliticianRoster{PartySlug: partySlug}
	for _, m := range s.roster.Members {
		if partySlug != "" && m.PartySlug != partySlug {
			continue
		}
		if currentOnly && !m.Current {
			continue
		}
		out.Members = append(out.Members, m)
	}
	if len(out.Members) == 0 {
		return nil, nil
	}
	if partySlug != "" {
		out.PartyNameEN = s.roster.PartyNameEN
		out.PartyNameFR = s.roster.PartyNameFR
	}
	return &out, nil
}

// HydrateMarkdown implements store.DocumentHydrator. The preferred language
// wins; the other language substitutes with a disclosure note.
func (s *Store) HydrateMarkdown(
	_ context.Context, ref parl.SourceRef, lang string,
) (*store.HydratedDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byLang, ok := s.docs[ref.Key()]
	if !ok {
		return nil, nil
	}
	if doc, ok := byLang[lang]; ok {
		return &doc, nil
	}
	other := parl.LanguageEN
	if lang == parl.LanguageEN {
		other = parl.LanguageFR
	}
	if doc, ok := byLang[other]; ok {
		if lang == parl.LanguageFR {
			doc.Note = "Document disponible en anglais seulement."
		} else {
			doc.Note = "Document available in French only."
		}
		return &doc, nil
	}
	return nil, nil
}
