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
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	openaiembed "github.com/openparl/parlrag/embedder/openai"
	"github.com/openparl/parlrag/log"
	"github.com/openparl/parlrag/parlcontext"
	rediscache "github.com/openparl/parlrag/parlcontext/cache/redis"
	"github.com/openparl/parlrag/store/inmemory"
	"github.com/openparl/parlrag/store/pgvector"
	"github.com/openparl/parlrag/store/postgres"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "parlrag",
	Short: "Grounded context retrieval for Canadian parliamentary records",
	Long: `parlrag retrieves citation-backed context about the Canadian Parliament:
bills, recorded votes, Hansard debates, committees and members, in English
and French. Run a single question with "ask" or expose the pipeline as an
MCP tool with "serve".`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.parlrag.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("demo", false, "use the built-in demo fixtures instead of a database")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string (or set PARLRAG_DATABASE_URL)")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for the result cache (or set PARLRAG_REDIS_ADDR)")
	rootCmd.PersistentFlags().String("embedding-model", openaiembed.DefaultModel, "embedding model name")
	rootCmd.PersistentFlags().Duration("cache-ttl", parlcontext.DefaultCacheTTL, "result cache TTL")
	rootCmd.PersistentFlags().Bool("cache-disabled", false, "disable the result cache")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("demo", rootCmd.PersistentFlags().Lookup("demo"))
	viper.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))
	viper.BindPFlag("redis_addr", rootCmd.PersistentFlags().Lookup("redis-addr"))
	viper.BindPFlag("embedding_model", rootCmd.PersistentFlags().Lookup("embedding-model"))
	viper.BindPFlag("cache_ttl", rootCmd.PersistentFlags().Lookup("cache-ttl"))
	viper.BindPFlag("cache_disabled", rootCmd.PersistentFlags().Lookup("cache-disabled"))
}

// initConfig reads the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".parlrag")
	}

	viper.SetEnvPrefix("PARLRAG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	}

	log.SetLevel(viper.GetString("log_level"))
}

// buildPipeline assembles the pipeline from configuration. The returned
// cleanup closes any opened connections; it is safe to call once.
func buildPipeline(ctx context.Context) (*parlcontext.Pipeline, func(), error) {
	cfg := parlcontext.DefaultConfig()
	cfg.CacheTTL = viper.GetDuration("cache_ttl")
	cfg.CacheDisabled = viper.GetBool("cache_disabled")

	opts := []parlcontext.Option{parlcontext.WithConfig(cfg)}
	cleanup := func() {}

	dbURL := viper.GetString("database_url")
	if viper.GetBool("demo") || dbURL == "" {
		if dbURL == "" && !viper.GetBool("demo") {
			log.Infof("no database configured, using demo fixtures")
		}
		fixtures := inmemory.Demo()
		opts = append(opts,
			parlcontext.WithVectorSearcher(fixtures),
			parlcontext.WithStructuredStore(fixtures),
			parlcontext.WithDocumentHydrator(fixtures),
		)
	} else {
		db, err := postgres.GetClientBuilder()(ctx, postgres.WithClientConnString(dbURL))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("creating pgx pool: %w", err)
		}
		cleanup = func() {
			pool.Close()
			db.Close()
		}

		embedder := openaiembed.New(openaiembed.WithModel(viper.GetString("embedding_model")))
		structured := postgres.NewStore(db)
		opts = append(opts,
			parlcontext.WithVectorSearcher(pgvector.New(pool, embedder)),
			parlcontext.WithStructuredStore(structured),
			parlcontext.WithDocumentHydrator(structured),
		)
	}

	if addr := viper.GetString("redis_addr"); addr != "" {
		opts = append(opts, parlcontext.WithCache(rediscache.NewFromAddr(addr)))
	}

	return parlcontext.New(opts...), cleanup, nil
}
