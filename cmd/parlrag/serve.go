//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openparl/parlrag/log"
	mcpserver "github.com/openparl/parlrag/tool/mcp"
)

var serveHTTPAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline as an MCP tool",
	Long: `Serve exposes get_parliament_context as an MCP tool. Without flags the
server speaks MCP over stdio; with --http it serves streamable HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pipeline, cleanup, err := buildPipeline(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		srv := mcpserver.NewServer(pipeline)
		if serveHTTPAddr != "" {
			log.Infof("serving MCP over HTTP on %s", serveHTTPAddr)
			return srv.RunHTTP(ctx, serveHTTPAddr)
		}
		log.Infof("serving MCP over stdio")
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	rootCmd.AddCommand(serveCmd)
}
