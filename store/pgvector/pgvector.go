//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package pgvector implements similarity search over the indexed excerpt
// table in PostgreSQL with the pgvector extension.
package pgvector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/openparl/parlrag/parl"
	"github.com/openparl/parlrag/store"
)

// Embedder turns query text into an embedding vector. The indexing side must
// use the same model; the searcher has no way to check.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Default schema names.
const (
	defaultTable              = "parl_excerpts"
	defaultSourceTypeField    = "source_type"
	defaultContentField       = "content"
	defaultRefField           = "ref"
	defaultCitationField      = "citation"
	defaultEmbeddingFieldName = "embedding"
)

type options struct {
	table              string
	sourceTypeField    string
	contentField       string
	refField           string
	citationField      string
	embeddingFieldName string
	minScore           float64
}

func defaultOptions() options {
	return options{
		table:              defaultTable,
		sourceTypeField:    defaultSourceTypeField,
		contentField:       defaultContentField,
		refField:           defaultRefField,
		citationField:      defaultCitationField,
		embeddingFieldName: defaultEmbeddingFieldName,
	}
}

// Option configures a Searcher.
type Option func(*options)

// WithTable overrides the excerpt table name.
func WithTable(table string) Option {
	return func(o *options) { o.table = table }
}

// WithMinScore drops candidates scoring below the threshold at the database,
// before they ever reach the pipeline.
func WithMinScore(minScore float64) Option {
	return func(o *options) { o.minScore = minScore }
}

// Searcher implements store.VectorSearcher over a pgvector-indexed table.
type Searcher struct {
	pool     *pgxpool.Pool
	embedder Embedder
	o        options
}

var _ store.VectorSearcher = (*Searcher)(nil)

// New creates a Searcher over the given connection pool and embedder.
func New(pool *pgxpool.Pool, embedder Embedder, opts ...Option) *Searcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Searcher{pool: pool, embedder: embedder, o: o}
}

// Search implements store.VectorSearcher. The query text is embedded and
// matched with cosine distance; score is 1 - distance.
func (s *Searcher) Search(
	ctx context.Context, sourceType parl.SourceType, queryText string, limit int,
) ([]parl.SearchResult, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("pgvector: embedder is not configured")
	}
	emb, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("pgvector: embedding query failed: %w", err)
	}

	sql, args := buildSearchSQL(s.o, string(sourceType), toVector(emb), limit)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("pgvector: search query failed: %w", err)
	}
	defer rows.Close()

	var results []parl.SearchResult
	for rows.Next() {
		var (
			content string
			refJSON []byte
			citJSON []byte
			score   float64
		)
		if err := rows.Scan(&content, &refJSON, &citJSON, &score); err != nil {
			return nil, fmt.Errorf("pgvector: scan failed: %w", err)
		}
		var r parl.SearchResult
		r.Content = content
		r.Similarity = score
		if err := json.Unmarshal(refJSON, &r.Ref); err != nil {
			return nil, fmt.Errorf("pgvector: decoding ref failed: %w", err)
		}
		if err := json.Unmarshal(citJSON, &r.Citation); err != nil {
			return nil, fmt.Errorf("pgvector: decoding citation failed: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgvector: reading rows failed: %w", err)
	}
	return results, nil
}

// toVector converts a float64 embedding to the pgvector wire type.
func toVector(emb []float64) pgvector.Vector {
	f32 := make([]float32, len(emb))
	for i, v := range emb {
		f32[i] = float32(v)
	}
	return pgvector.NewVector(f32)
}

// buildSearchSQL constructs the similarity query with positional arguments
// only; no user input is interpolated into the SQL text.
func buildSearchSQL(o options, sourceType string, vec pgvector.Vector, limit int) (string, []any) {
	conditions := fmt.Sprintf("%s = $2", o.sourceTypeField)
	args := []any{vec, sourceType}
	if o.minScore > 0 {
		conditions += fmt.Sprintf(" AND (1 - (%s <=> $1)) >= %f", o.embeddingFieldName, o.minScore)
	}
	sql := fmt.Sprintf(`
		SELECT %s, %s, %s, 1 - (%s <=> $1) AS score
		FROM %s
		WHERE %s
		ORDER BY %s <=> $1
		LIMIT %d`,
		o.contentField, o.refField, o.citationField, o.embeddingFieldName,
		o.table,
		conditions,
		o.embeddingFieldName,
		limit)
	return sql, args
}
