//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package hydrate fetches the full canonical document behind the top-ranked
// result of each distinct source type, in parallel.
package hydrate

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/openparl/parlrag/log"
	"github.com/openparl/parlrag/parl"
	"github.com/openparl/parlrag/store"
)

// maxPoolSize caps concurrent hydrations; there is at most one per source
// type, so the pool never needs to be larger than the type count.
const maxPoolSize = 6

// Hydrator fetches full canonical documents for filtered search results.
type Hydrator struct {
	docs store.DocumentHydrator
}

// New creates a Hydrator over the given document store.
func New(docs store.DocumentHydrator) *Hydrator {
	return &Hydrator{docs: docs}
}

// Hydrate fetches the full document for the top-ranked result of each
// distinct source type present in results, in the preferred language.
//
// All hydrations run concurrently and are independently fault-isolated: a
// failure fetching one type degrades to omission (logged) and never affects
// the others. The returned slice is ordered by each type's first appearance
// in results, so identical input yields identical output.
func (h *Hydrator) Hydrate(
	ctx context.Context, results []parl.SearchResult, lang string,
) []parl.HydratedSource {
	if h.docs == nil || len(results) == 0 {
		return nil
	}

	// Top-ranked result per type, in first-appearance order. Results arrive
	// already relevance-ordered, so the first hit per type is its best.
	var tops []parl.SearchResult
	seen := make(map[parl.SourceType]bool)
	for _, r := range results {
		if seen[r.Ref.Type] {
			continue
		}
		seen[r.Ref.Type] = true
		tops = append(tops, r)
	}

	pool, err := ants.NewPool(maxPoolSize)
	if err != nil {
		log.Errorf("hydrate: failed to create worker pool: %v", err)
		return nil
	}
	defer pool.Release()

	hydrated := make([]*parl.HydratedSource, len(tops))
	var wg sync.WaitGroup
	for i, top := range tops {
		i, top := i, top
		wg.Add(1)
		task := func() {
			defer wg.Done()
			doc, err := h.docs.HydrateMarkdown(ctx, top.Ref, lang)
			if err != nil {
				log.Warnf("hydrate: %s hydration failed for %s: %v", top.Ref.Type, top.Ref.Key(), err)
				return
			}
			if doc == nil {
				log.Debugf("hydrate: no canonical document for %s", top.Ref.Key())
				return
			}
			hydrated[i] = &parl.HydratedSource{
				SourceType:   top.Ref.Type,
				Key:          top.Ref.Key(),
				Markdown:     doc.Markdown,
				LanguageUsed: doc.LanguageUsed,
				Note:         doc.Note,
			}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			log.Warnf("hydrate: failed to submit %s hydration: %v", top.Ref.Type, err)
		}
	}
	wg.Wait()

	// Compact in deterministic order, dropping failed hydrations.
	var out []parl.HydratedSource
	for _, hs := range hydrated {
		if hs != nil {
			out = append(out, *hs)
		}
	}
	return out
}
