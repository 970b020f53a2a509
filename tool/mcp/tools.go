//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openparl/parlrag/parl"
)

// ContextInput is the input schema for the get_parliament_context tool.
type ContextInput struct {
	Query string `json:"query" jsonschema:"the question about the Canadian Parliament, in English or French"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of citations to return (default 5, max 100)"`
}

// CitationOutput is one citation in the tool output, rendered in the
// detected language.
type CitationOutput struct {
	ID         int    `json:"id"`
	DisplayID  string `json:"display_id"`
	SourceType string `json:"source_type"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Text       string `json:"text,omitempty"`
}

// ContextOutput is the output schema for the get_parliament_context tool.
type ContextOutput struct {
	Language        string           `json:"language"`
	Prompt          string           `json:"prompt"`
	Citations       []CitationOutput `json:"citations"`
	HydratedSources int              `json:"hydrated_sources"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_parliament_context",
		Description: "Retrieve grounded, citation-backed context about Canadian parliamentary records: bills, votes, debates, committees and members",
	}, s.handleGetContext)
}

// handleGetContext handles the get_parliament_context tool invocation.
func (s *Server) handleGetContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContextInput,
) (*mcp.CallToolResult, ContextOutput, error) {
	res, err := s.pipeline.GetParliamentContext(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, ContextOutput{}, err
	}

	output := ContextOutput{
		Language:        res.Language,
		Prompt:          res.Prompt,
		Citations:       make([]CitationOutput, len(res.Citations)),
		HydratedSources: len(res.HydratedSources),
	}
	lang := res.Language
	if lang != parl.LanguageFR {
		lang = parl.LanguageEN
	}
	for i, c := range res.Citations {
		output.Citations[i] = CitationOutput{
			ID:         c.ID,
			DisplayID:  c.DisplayID,
			SourceType: string(c.SourceType),
			Title:      c.Title(lang),
			URL:        c.URL(lang),
			Text:       c.Text(lang),
		}
	}
	return nil, output, nil
}
