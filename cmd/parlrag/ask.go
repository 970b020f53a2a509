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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openparl/parlrag/parl"
)

var (
	askLimit int
	askJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Retrieve grounded context for a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, cleanup, err := buildPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		query := strings.Join(args, " ")
		res, err := pipeline.GetParliamentContext(cmd.Context(), query, askLimit)
		if err != nil {
			return err
		}

		if askJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Prompt)
		if len(res.Citations) > 0 {
			fmt.Fprintln(out)
			lang := res.Language
			if lang != parl.LanguageFR {
				lang = parl.LanguageEN
			}
			for _, c := range res.Citations {
				fmt.Fprintf(out, "[%s] %s\n", c.DisplayID, c.URL(lang))
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().IntVar(&askLimit, "limit", 0, "maximum number of citations (0 uses the default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(askCmd)
}
