//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package openai embeds query text through the OpenAI embeddings API, or any
// OpenAI-compatible endpoint.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/openparl/parlrag/log"
)

const (
	// DefaultModel is the default embedding model.
	DefaultModel = "text-embedding-3-small"
	// DefaultDimensions matches text-embedding-3-small.
	DefaultDimensions = 1536
	// DefaultMaxRetries is the default number of retries on failure.
	DefaultMaxRetries = 2

	// Model prefix for the text-embedding-3 series, which accepts a
	// dimensions parameter.
	textEmbedding3Prefix = "text-embedding-3"
)

// defaultRetryBackoff is the backoff schedule for retry attempts.
var defaultRetryBackoff = []time.Duration{
	100 * time.Millisecond,
	200 * time.Millisecond,
	400 * time.Millisecond,
	800 * time.Millisecond,
}

// Embedder calls the embeddings API with bounded retries.
type Embedder struct {
	client     openai.Client
	model      string
	dimensions int
	apiKey     string
	baseURL    string

	maxRetries   int
	retryBackoff []time.Duration
}

// Option configures the Embedder.
type Option func(*Embedder)

// WithModel sets the embedding model.
func WithModel(model string) Option {
	return func(e *Embedder) { e.model = model }
}

// WithDimensions sets the embedding dimensionality. Only the
// text-embedding-3 series honors it.
func WithDimensions(dimensions int) Option {
	return func(e *Embedder) { e.dimensions = dimensions }
}

// WithAPIKey sets the API key. Unset, the OPENAI_API_KEY environment
// variable applies.
func WithAPIKey(apiKey string) Option {
	return func(e *Embedder) { e.apiKey = apiKey }
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(e *Embedder) { e.baseURL = baseURL }
}

// WithMaxRetries sets the retry budget. Negative values are treated as 0.
func WithMaxRetries(maxRetries int) Option {
	return func(e *Embedder) {
		if maxRetries < 0 {
			maxRetries = 0
		}
		e.maxRetries = maxRetries
	}
}

// New creates an Embedder with the given options.
func New(opts ...Option) *Embedder {
	e := &Embedder{
		model:        DefaultModel,
		dimensions:   DefaultDimensions,
		maxRetries:   DefaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(e)
	}

	var clientOpts []option.RequestOption
	if e.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(e.apiKey))
	}
	if e.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(e.baseURL))
	}
	// Retries are handled here, not in the SDK.
	clientOpts = append(clientOpts, option.WithMaxRetries(0))
	e.client = openai.NewClient(clientOpts...)
	return e
}

// Embed returns the embedding vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, fmt.Errorf("openai: text cannot be empty")
	}

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		rsp, err := e.response(ctx, text)
		if err == nil {
			if len(rsp.Data) == 0 || len(rsp.Data[0].Embedding) == 0 {
				log.Warnf("openai: empty embedding response for model %s", e.model)
				return []float64{}, nil
			}
			return rsp.Data[0].Embedding, nil
		}
		lastErr = err
		if attempt >= e.maxRetries {
			break
		}
		backoff := e.backoffDuration(attempt)
		log.Infof("openai: embedding request failed, retrying in %v (attempt %d/%d): %v",
			backoff, attempt+1, e.maxRetries, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("openai: embedding failed: %w", lastErr)
}

// Dimensions returns the configured embedding dimensionality.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

func (e *Embedder) response(ctx context.Context, text string) (*openai.CreateEmbeddingResponse, error) {
	request := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: e.model,
	}
	if strings.HasPrefix(e.model, textEmbedding3Prefix) {
		request.Dimensions = openai.Int(int64(e.dimensions))
	}
	return e.client.Embeddings.New(ctx, request)
}

// backoffDuration returns the wait before the next attempt; past the end of
// the schedule the last duration repeats.
func (e *Embedder) backoffDuration(attempt int) time.Duration {
	if len(e.retryBackoff) == 0 {
		return 0
	}
	if attempt < len(e.retryBackoff) {
		return e.retryBackoff[attempt]
	}
	return e.retryBackoff[len(e.retryBackoff)-1]
}
