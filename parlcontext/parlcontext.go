//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package parlcontext assembles grounded, citation-backed context for
// bilingual questions about the Canadian Parliament.
//
// The pipeline runs: analyze → (enumeration? handle-and-return :
// fan-out-search → rerank → filter-by-intent → hydrate-in-parallel →
// assemble) → cache → return.
package parlcontext

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openparl/parlrag/log"
	"github.com/openparl/parlrag/parl"
	"github.com/openparl/parlrag/parlcontext/assemble"
	"github.com/openparl/parlrag/parlcontext/cache"
	"github.com/openparl/parlrag/parlcontext/enumeration"
	"github.com/openparl/parlrag/parlcontext/hydrate"
	"github.com/openparl/parlrag/parlcontext/query"
	"github.com/openparl/parlrag/parlcontext/reranker"
	"github.com/openparl/parlrag/parlcontext/reranker/lexical"
	"github.com/openparl/parlrag/parlcontext/searcher"
	"github.com/openparl/parlrag/store"
)

// Configuration defaults.
const (
	DefaultLimit           = 5
	DefaultMaxLimit        = 100
	DefaultCandidateBudget = 40
	DefaultCacheTTL        = time.Hour
)

// ErrEmptyQuery rejects requests with no query text. It is the only error
// the pipeline returns under normal operating conditions.
var ErrEmptyQuery = errors.New("parlcontext: query must not be empty")

// Config carries the pipeline's tunables. It is injected explicitly rather
// than read from process-wide globals so the pipeline stays testable.
type Config struct {
	// DefaultLimit applies when the caller passes limit <= 0.
	DefaultLimit int
	// MaxLimit caps the citation count; out-of-range limits are clamped,
	// never rejected.
	MaxLimit int
	// CandidateBudget is the global candidate budget driving the per-query
	// fan-out budget and the rerank output cap.
	CandidateBudget int
	// CacheTTL bounds how long assembled results stay cached.
	CacheTTL time.Duration
	// CacheDisabled bypasses cache reads and writes entirely.
	CacheDisabled bool
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:    DefaultLimit,
		MaxLimit:        DefaultMaxLimit,
		CandidateBudget: DefaultCandidateBudget,
		CacheTTL:        DefaultCacheTTL,
	}
}

// Pipeline is the retrieval and context-assembly pipeline.
type Pipeline struct {
	cfg Config

	analyzer   query.Analyzer
	vs         store.VectorSearcher
	structured store.StructuredStore
	docs       store.DocumentHydrator
	rr         reranker.Reranker
	resultC    cache.Cache

	search    *searcher.MultiQuerySearcher
	hydrator  *hydrate.Hydrator
	assembler *assemble.Assembler
	enum      *enumeration.Handler
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConfig sets the pipeline configuration.
func WithConfig(cfg Config) Option {
	return func(p *Pipeline) { p.cfg = cfg }
}

// WithAnalyzer sets a custom query analyzer.
func WithAnalyzer(a query.Analyzer) Option {
	return func(p *Pipeline) { p.analyzer = a }
}

// WithVectorSearcher sets the similarity-search backend.
func WithVectorSearcher(vs store.VectorSearcher) Option {
	return func(p *Pipeline) { p.vs = vs }
}

// WithStructuredStore sets the structured parliamentary database.
func WithStructuredStore(s store.StructuredStore) Option {
	return func(p *Pipeline) { p.structured = s }
}

// WithDocumentHydrator sets the canonical-document store.
func WithDocumentHydrator(d store.DocumentHydrator) Option {
	return func(p *Pipeline) { p.docs = d }
}

// WithReranker sets a custom reranker.
func WithReranker(r reranker.Reranker) Option {
	return func(p *Pipeline) { p.rr = r }
}

// WithCache sets the result cache.
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.resultC = c }
}

// New creates a Pipeline with the given options. Unset components fall back
// to the built-in analyzer, the lexical reranker, and a no-op cache.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(p)
	}
	if p.analyzer == nil {
		p.analyzer = query.NewBuiltinAnalyzer()
	}
	if p.rr == nil {
		p.rr = lexical.New()
	}
	if p.resultC == nil {
		p.resultC = cache.Noop{}
	}
	p.search = searcher.New(p.vs)
	p.hydrator = hydrate.New(p.docs)
	p.assembler = assemble.New()
	p.enum = enumeration.New(p.structured, p.docs)
	return p
}

// GetParliamentContext retrieves and assembles grounded context for the
// query. limit <= 0 takes the configured default; out-of-range values are
// clamped into [1, MaxLimit]. Degraded completeness (fewer citations, no
// hydrated source, a disclosure note) is the only visible symptom of
// internal partial failure.
func (p *Pipeline) GetParliamentContext(
	ctx context.Context, rawQuery string, limit int,
) (*parl.ContextResult, error) {
	if strings.TrimSpace(rawQuery) == "" {
		return nil, ErrEmptyQuery
	}
	bounded := p.clampLimit(limit)
	key := cache.Key(rawQuery, bounded)

	if !p.cfg.CacheDisabled {
		if cached, ok := p.cachedResult(ctx, key); ok {
			return cached, nil
		}
	}

	requestID := uuid.NewString()
	log.Debugf("parlcontext: request %s query=%q limit=%d", requestID, rawQuery, bounded)

	analysis := p.analyzer.Analyze(ctx, rawQuery)

	if analysis.Enumeration.IsEnumeration {
		if res := p.enum.Handle(ctx, analysis.Enumeration, effectiveLanguage(analysis.Language)); res != nil {
			res.Language = analysis.Language
			p.storeResult(ctx, key, res)
			log.Debugf("parlcontext: request %s answered by enumeration", requestID)
			return res, nil
		}
		// Enumeration fell through: the analysis skipped the search plan, so
		// derive it now before the ordinary path.
		p.analyzer.DeriveSearchPlan(analysis)
	}

	candidates := p.search.Search(ctx, analysis, p.cfg.CandidateBudget)

	reranked, err := p.rr.Rerank(ctx, rawQuery, candidates, p.cfg.CandidateBudget)
	if err != nil {
		log.Warnf("parlcontext: request %s rerank failed, keeping pool order: %v", requestID, err)
		reranked = candidates
	}

	filtered := filterByIntent(reranked, analysis.PriorityIntent)
	if len(filtered) > bounded {
		filtered = filtered[:bounded]
	}

	hydrated := p.hydrator.Hydrate(ctx, filtered, effectiveLanguage(analysis.Language))

	result := p.assembler.Assemble(analysis.Language, filtered, hydrated)
	p.storeResult(ctx, key, result)
	log.Debugf("parlcontext: request %s assembled %d citation(s)", requestID, len(result.Citations))
	return result, nil
}

// clampLimit bounds the requested limit into [1, MaxLimit], substituting the
// default for non-positive values.
func (p *Pipeline) clampLimit(limit int) int {
	if limit <= 0 {
		limit = p.cfg.DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > p.cfg.MaxLimit {
		limit = p.cfg.MaxLimit
	}
	return limit
}

// cachedResult reads and decodes a cached result. Any failure — backend or
// malformed payload — is a miss, never a request error.
func (p *Pipeline) cachedResult(ctx context.Context, key string) (*parl.ContextResult, bool) {
	payload, ok := p.resultC.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var res parl.ContextResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		log.Warnf("parlcontext: malformed cache payload for %s: %v", key, err)
		return nil, false
	}
	return &res, true
}

// storeResult serializes and caches a result. Both the enumeration path and
// the ordinary path write under the same key scheme; last write wins.
func (p *Pipeline) storeResult(ctx context.Context, key string, res *parl.ContextResult) {
	if p.cfg.CacheDisabled {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		log.Warnf("parlcontext: failed to serialize result for %s: %v", key, err)
		return
	}
	p.resultC.Set(ctx, key, string(payload), p.cfg.CacheTTL)
}

// filterByIntent applies the hard allow-list for the detected intent. It
// runs strictly after reranking and before truncation so an intent mismatch
// never starves an otherwise-correct result set.
func filterByIntent(results []parl.SearchResult, intent parl.Intent) []parl.SearchResult {
	allowed := parl.AllowedSourceTypes(intent)
	var out []parl.SearchResult
	for _, r := range results {
		if allowed[r.Ref.Type] {
			out = append(out, r)
		}
	}
	return out
}

// effectiveLanguage maps the detected language onto the two content
// languages; unknown reads as English.
func effectiveLanguage(lang string) string {
	if lang == parl.LanguageFR {
		return parl.LanguageFR
	}
	return parl.LanguageEN
}
