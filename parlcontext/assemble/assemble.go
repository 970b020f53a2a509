//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package assemble renders the final prompt and citation sequence. Assembly
// is deterministic: identical inputs always produce byte-identical output,
// which cache correctness and reproducible tests depend on.
package assemble

import (
	"fmt"
	"strings"

	"github.com/openparl/parlrag/parl"
)

// sourceTypeLabels maps each source type to its EN and FR display labels.
var sourceTypeLabels = map[parl.SourceType][2]string{
	parl.SourceBill:       {"Bill", "Projet de loi"},
	parl.SourceVote:       {"Vote", "Vote"},
	parl.SourceStatement:  {"Statement", "Déclaration"},
	parl.SourceDebate:     {"Debate", "Débat"},
	parl.SourceCommittee:  {"Committee", "Comité"},
	parl.SourcePolitician: {"Member of Parliament", "Député(e)"},
}

// SourceTypeLabel returns the display label for a source type in the given
// language.
func SourceTypeLabel(st parl.SourceType, lang string) string {
	labels, ok := sourceTypeLabels[st]
	if !ok {
		return string(st)
	}
	if lang == parl.LanguageFR {
		return labels[1]
	}
	return labels[0]
}

func sectionLabels(lang string) (sources, fullDocs, note string) {
	if lang == parl.LanguageFR {
		return "Sources", "Documents complets", "Note"
	}
	return "Sources", "Full documents", "Note"
}

// Assembler renders filtered results and hydrated sources into a
// ContextResult.
type Assembler struct{}

// New creates an Assembler.
func New() *Assembler {
	return &Assembler{}
}

// Assemble assigns citation ids 1..N in the order of results, renders the
// bilingual-aware prompt, and returns the complete ContextResult. Citations
// keep both EN and FR fields populated regardless of the output language.
func (a *Assembler) Assemble(
	lang string,
	results []parl.SearchResult,
	hydrated []parl.HydratedSource,
) *parl.ContextResult {
	displayLang := lang
	if displayLang != parl.LanguageFR {
		displayLang = parl.LanguageEN
	}
	sourcesLabel, fullDocsLabel, noteLabel := sectionLabels(displayLang)

	citations := make([]parl.Citation, 0, len(results))
	var b strings.Builder

	if len(results) > 0 {
		fmt.Fprintf(&b, "%s:\n\n", sourcesLabel)
	}
	for i, r := range results {
		c := r.Citation.Numbered(i + 1)
		citations = append(citations, c)

		fmt.Fprintf(&b, "[%s] %s (%s)\n", c.DisplayID, c.Title(displayLang), SourceTypeLabel(c.SourceType, displayLang))
		if url := c.URL(displayLang); url != "" {
			fmt.Fprintf(&b, "URL: %s\n", url)
		}
		if text := c.Text(displayLang); text != "" {
			fmt.Fprintf(&b, "%s\n", text)
		}
		if r.Content != "" {
			fmt.Fprintf(&b, "%s\n", r.Content)
		}
		b.WriteString("\n")
	}

	if len(hydrated) > 0 {
		fmt.Fprintf(&b, "%s:\n\n", fullDocsLabel)
		for _, hs := range hydrated {
			fmt.Fprintf(&b, "## %s — %s\n\n", SourceTypeLabel(hs.SourceType, displayLang), hs.Key)
			b.WriteString(hs.Markdown)
			if !strings.HasSuffix(hs.Markdown, "\n") {
				b.WriteString("\n")
			}
			if hs.Note != "" {
				fmt.Fprintf(&b, "\n%s: %s\n", noteLabel, hs.Note)
			}
			b.WriteString("\n")
		}
	}

	return &parl.ContextResult{
		Language:        lang,
		Prompt:          strings.TrimRight(b.String(), "\n"),
		Citations:       citations,
		HydratedSources: hydrated,
	}
}
