//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package parl

import "fmt"

// Citation is a numbered bilingual reference to an authoritative source
// document. Both EN and FR fields are always populated so the citation is
// reusable by either-language consumers.
type Citation struct {
	// ID is the sequential citation number, contiguous 1..N in final output
	// order. Zero until assigned by the assembler.
	ID int `json:"id"`
	// DisplayID is the prefixed display form, e.g. "P1".
	DisplayID  string     `json:"display_id"`
	SourceType SourceType `json:"source_type"`
	TitleEN    string     `json:"title_en"`
	TitleFR    string     `json:"title_fr"`
	TextEN     string     `json:"text_en"`
	TextFR     string     `json:"text_fr"`
	URLEN      string     `json:"url_en"`
	URLFR      string     `json:"url_fr"`
}

// Numbered returns a copy of c with the sequential id and display id set.
func (c Citation) Numbered(id int) Citation {
	c.ID = id
	c.DisplayID = fmt.Sprintf("P%d", id)
	return c
}

// Title returns the citation title in the requested language, falling back
// to the other language when the requested one is empty.
func (c Citation) Title(lang string) string {
	if lang == LanguageFR {
		if c.TitleFR != "" {
			return c.TitleFR
		}
		return c.TitleEN
	}
	if c.TitleEN != "" {
		return c.TitleEN
	}
	return c.TitleFR
}

// Text returns the citation body text in the requested language, falling
// back to the other language when the requested one is empty.
func (c Citation) Text(lang string) string {
	if lang == LanguageFR {
		if c.TextFR != "" {
			return c.TextFR
		}
		return c.TextEN
	}
	if c.TextEN != "" {
		return c.TextEN
	}
	return c.TextFR
}

// URL returns the citation URL in the requested language, falling back to
// the other language when the requested one is empty.
func (c Citation) URL(lang string) string {
	if lang == LanguageFR {
		if c.URLFR != "" {
			return c.URLFR
		}
		return c.URLEN
	}
	if c.URLEN != "" {
		return c.URLEN
	}
	return c.URLFR
}

// Recognized language codes.
const (
	LanguageEN      = "en"
	LanguageFR      = "fr"
	LanguageUnknown = "unknown"
)

// SearchResult is one candidate produced by similarity search: an indexed
// excerpt plus the identity of the canonical document behind it and a
// pre-rendered bilingual citation.
type SearchResult struct {
	Content    string    `json:"content"`
	Ref        SourceRef `json:"ref"`
	Similarity float64   `json:"similarity"`
	Citation   Citation  `json:"citation"`
}

// HydratedSource is the full canonical document fetched for the top-ranked
// result of one source type.
type HydratedSource struct {
	SourceType SourceType `json:"source_type"`
	// Key is the stable document identity (SourceRef.Key of the hydrated result).
	Key          string `json:"key"`
	Markdown     string `json:"markdown"`
	LanguageUsed string `json:"language_used"`
	// Note is set only when the requested language was unavailable and the
	// other language was substituted.
	Note string `json:"note,omitempty"`
}

// ContextResult is the sole externally observable output of the pipeline:
// an assembled prompt, its ordered citations, and at most one hydrated
// source per distinct source type. It round-trips through JSON for caching.
type ContextResult struct {
	Language        string           `json:"language"`
	Prompt          string           `json:"prompt"`
	Citations       []Citation       `json:"citations"`
	HydratedSources []HydratedSource `json:"hydrated_sources"`
}
