//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// Package mcp exposes the retrieval pipeline as a Model Context Protocol
// server, over stdio or streamable HTTP.
package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openparl/parlrag/parlcontext"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for the Parliament context pipeline.
type Server struct {
	pipeline *parlcontext.Pipeline
	server   *mcp.Server
}

// NewServer creates an MCP server around the pipeline.
func NewServer(pipeline *parlcontext.Pipeline) *Server {
	impl := &mcp.Implementation{
		Name:    "parlrag",
		Version: Version,
	}
	s := &Server{
		pipeline: pipeline,
		server:   mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio. It blocks until the context is
// cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over streamable HTTP on addr. It blocks
// until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
