//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package query provides query analysis for the retrieval pipeline: language
// detection, intent classification, entity extraction, reformulation and
// enumeration-intent detection.
package query

import (
	"context"

	"github.com/openparl/parlrag/parl"
)

// EnumerationKind classifies what an enumeration query wants listed.
type EnumerationKind string

// Enumeration kinds.
const (
	EnumerationVote       EnumerationKind = "vote"
	EnumerationPolitician EnumerationKind = "politician"
	EnumerationCommittee  EnumerationKind = "committee"
)

// EnumerationIntent describes a query that demands an exhaustive, unsampled
// result set rather than a top-k relevance match.
type EnumerationIntent struct {
	IsEnumeration bool
	Kind          EnumerationKind

	// Vote enumeration fields.
	BillNumber string
	VoteType   string // "yea", "nay", "paired" or empty for all ballots

	// Shared by vote and politician enumeration.
	PartySlug string
}

// Analysis is the per-request result of query analysis. It is created once
// per request and owned by that request. SearchTypes and Reformulations are
// left empty when an enumeration intent was detected; the pipeline re-derives
// them with DeriveSearchPlan if the enumeration path falls through.
type Analysis struct {
	Query          string
	Language       string
	Confidence     float64
	PriorityIntent parl.Intent
	SearchTypes    []parl.SourceType
	Reformulations []string
	BillNumbers    []string
	Enumeration    EnumerationIntent
}

// Analyzer turns a raw query into an Analysis. Implementations must never
// fail on malformed input: the worst case is an unknown-language,
// empty-entity, non-enumeration analysis.
//
// The classification heuristics are deliberately pluggable; the built-in
// implementation makes no claim of covering every phrasing.
type Analyzer interface {
	// Analyze performs the full analysis of a raw query.
	Analyze(ctx context.Context, rawQuery string) *Analysis

	// DeriveSearchPlan fills SearchTypes and Reformulations on an analysis
	// that skipped them during enumeration detection. Calling it on an
	// already-planned analysis recomputes the same values.
	DeriveSearchPlan(a *Analysis)
}
