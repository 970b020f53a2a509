//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package store declares the collaborator contracts the retrieval pipeline
// consumes: similarity search over the indexed corpus, the structured
// parliamentary database, and canonical-document hydration.
//
// Data absence is signaled with nil/empty returns, never with an error.
// Errors are reserved for transport and database faults; the pipeline
// degrades on them instead of retrying.
package store

import (
	"context"

	"github.com/openparl/parlrag/parl"
)

// VectorSearcher runs a similarity search over the indexed excerpts of one
// source type.
type VectorSearcher interface {
	// Search returns up to limit candidates for queryText within sourceType,
	// ordered by descending similarity. An empty result is not an error.
	Search(ctx context.Context, sourceType parl.SourceType, queryText string, limit int) ([]parl.SearchResult, error)
}

// StructuredStore answers enumeration queries from the relational database.
type StructuredStore interface {
	// CompleteMemberVotesForBill returns every member ballot for the most
	// recent vote question on the bill, optionally filtered by ballot value
	// ("yea", "nay", "paired") and party slug. It returns (nil, nil) when no
	// matching vote question exists.
	CompleteMemberVotesForBill(ctx context.Context, billNumber, voteType, partySlug, lang string) (*parl.VoteEnumeration, error)

	// AllPoliticians returns the complete member roster, optionally filtered
	// by party slug and restricted to sitting members. It returns (nil, nil)
	// when nothing matches.
	AllPoliticians(ctx context.Context, partySlug string, currentOnly bool, lang string) (*parl.PoliticianRoster, error)
}

// HydratedDoc is the full canonical document behind a search hit.
type HydratedDoc struct {
	Markdown     string
	LanguageUsed string
	// Note is set when the requested language was unavailable and the other
	// language was substituted.
	Note string
}

// DocumentHydrator renders the full canonical markdown for a document.
type DocumentHydrator interface {
	// HydrateMarkdown returns the complete document for ref in the preferred
	// language, substituting the other language (with a disclosure note) when
	// the preferred one has no content. It returns (nil, nil) when the
	// document does not exist.
	HydrateMarkdown(ctx context.Context, ref parl.SourceRef, lang string) (*HydratedDoc, error)
}
