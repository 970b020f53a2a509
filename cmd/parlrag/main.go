//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

// parlrag is the command-line entry point: ask a question directly or serve
// the pipeline as an MCP tool.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
