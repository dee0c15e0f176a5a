// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/kbcheck/internal/kb"
	"github.com/meshintel/kbcheck/pkg/types"
)

func init() {
	viper.SetDefault("kb.timeout", 30*time.Second)
	viper.SetDefault("kb.user_agent", "kbcheck/0.1")
	viper.SetDefault("agent.timeout", 60*time.Second)
	viper.SetDefault("ingest.batch_size", 100)
	viper.SetDefault("ingest.retry.max_attempts", 3)
	viper.SetDefault("ingest.retry.base_delay", 200*time.Millisecond)
	viper.SetDefault("ingest.call_timeout", 60*time.Second)
	viper.SetDefault("bench.top_k", 10)
	viper.SetDefault("bench.call_timeout", 15*time.Second)
	viper.SetDefault("bench.latency_target", 2*time.Second)
	viper.SetDefault("probe.call_timeout", 60*time.Second)
	viper.SetDefault("probe.latency_target", 5*time.Second)
	viper.SetDefault("audit.citation_ceiling", 100000)
	viper.SetDefault("audit.near_dup_limit", 2000)
	viper.SetDefault("weights.operations", 0.25)
	viper.SetDefault("weights.search", 0.25)
	viper.SetDefault("weights.ai", 0.25)
	viper.SetDefault("weights.integrity", 0.25)
}

// harnessConfig assembles the per-run configuration from config file,
// environment, and command flags. Flags win over config values.
func harnessConfig(cmd *cobra.Command) types.HarnessConfig {
	backend, _ := cmd.Flags().GetString("kb")
	kbURL, _ := cmd.Flags().GetString("kb-url")
	agentURL, _ := cmd.Flags().GetString("agent-url")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	cfg := types.HarnessConfig{
		KB: types.KBConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("kb.timeout"),
				UserAgent: viper.GetString("kb.user_agent"),
			},
			Backend: backend,
			BaseURL: kbURL,
			APIKey:  secretDefault("kb-api-key", viper.GetString("kb.api_key")),
			DataDir: dataDir,
		},
		Agent: types.AgentConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("agent.timeout"),
				UserAgent: viper.GetString("kb.user_agent"),
			},
			BaseURL: agentURL,
			APIKey:  secretDefault("agent-api-key", viper.GetString("agent.api_key")),
		},
		Generator: types.GeneratorConfig{
			HistoryYears: viper.GetInt("generator.history_years"),
		},
		Ingest: types.IngestConfig{
			BatchSize: viper.GetInt("ingest.batch_size"),
			Retry: types.RetryPolicy{
				MaxAttempts: viper.GetInt("ingest.retry.max_attempts"),
				BaseDelay:   viper.GetDuration("ingest.retry.base_delay"),
			},
			CallTimeout: viper.GetDuration("ingest.call_timeout"),
		},
		Bench: types.BenchConfig{
			TopK:          viper.GetInt("bench.top_k"),
			CallTimeout:   viper.GetDuration("bench.call_timeout"),
			LatencyTarget: viper.GetDuration("bench.latency_target"),
			QueriesFile:   viper.GetString("bench.queries_file"),
		},
		Probe: types.ProbeConfig{
			CallTimeout:   viper.GetDuration("probe.call_timeout"),
			LatencyTarget: viper.GetDuration("probe.latency_target"),
			QuestionsFile: viper.GetString("probe.questions_file"),
		},
		Audit: types.AuditConfig{
			SampleSize:             viper.GetInt("audit.sample_size"),
			CitationCeiling:        viper.GetInt("audit.citation_ceiling"),
			NearDupLimit:           viper.GetInt("audit.near_dup_limit"),
			MissingFieldPenalty:    viper.GetFloat64("audit.missing_field_penalty"),
			DuplicateTitlePenalty:  viper.GetFloat64("audit.duplicate_title_penalty"),
			InvalidCitationPenalty: viper.GetFloat64("audit.invalid_citation_penalty"),
		},
		Weights: types.ScoreWeights{
			Operations: viper.GetFloat64("weights.operations"),
			Search:     viper.GetFloat64("weights.search"),
			AI:         viper.GetFloat64("weights.ai"),
			Integrity:  viper.GetFloat64("weights.integrity"),
		},
	}
	return cfg
}

// collaborators builds the Storage and Agent clients for the selected
// backend. The local backend serves both roles from one SQLite store;
// the caller owns closing it.
func collaborators(cfg types.HarnessConfig) (kb.Storage, kb.Agent, func() error, error) {
	switch cfg.KB.Backend {
	case "local":
		store, err := kb.NewSQLiteStore(cfg.KB.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening local knowledge base: %w", err)
		}
		return store, store, store.Close, nil
	case "http", "":
		store := kb.NewHTTPStore(cfg.KB, cfg.Agent)
		return store, store, func() error { return nil }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown kb backend %q: use http or local", cfg.KB.Backend)
	}
}
