// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for collaborator clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "kbcheck/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// KBConfig holds connection settings for the knowledge-base collaborator.
type KBConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the storage client: "http" or "local".
	Backend string `json:"backend" yaml:"backend"`

	// BaseURL is the knowledge-base server URL for the http backend.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates requests to the knowledge-base server.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// DataDir is the index directory for the local backend.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// AgentConfig holds connection settings for the AI agent collaborator.
type AgentConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the agent endpoint URL.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey authenticates requests to the agent.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// GeneratorConfig controls synthetic record generation.
type GeneratorConfig struct {
	// Seed seeds the random stream. Zero means time-seeded
	// (non-reproducible); any other value yields identical records
	// across runs.
	Seed int64 `json:"seed" yaml:"seed"`

	// HistoryYears bounds publication dates to the last N years (default 10).
	HistoryYears int `json:"history_years" yaml:"history_years"`
}

// RetryPolicy bounds per-batch ingestion retries.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts per batch (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// BaseDelay is the first backoff delay; it doubles each attempt.
	BaseDelay time.Duration `json:"base_delay" yaml:"base_delay"`
}

// IngestConfig controls the batch ingestion profiler.
type IngestConfig struct {
	// BatchSize is the number of records per bulk insert (default 100).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// Retry bounds per-batch retries.
	Retry RetryPolicy `json:"retry" yaml:"retry"`

	// Concurrency is the number of batches in flight (default 1).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// CallTimeout bounds each bulk-insert call.
	CallTimeout time.Duration `json:"call_timeout" yaml:"call_timeout"`
}

// BenchConfig controls the search benchmark.
type BenchConfig struct {
	// TopK is the number of results requested per query (default 10).
	TopK int `json:"top_k" yaml:"top_k"`

	// CallTimeout bounds each search call.
	CallTimeout time.Duration `json:"call_timeout" yaml:"call_timeout"`

	// LatencyTarget is the mean latency above which the search score decays.
	LatencyTarget time.Duration `json:"latency_target" yaml:"latency_target"`

	// Concurrency is the number of queries in flight (default 1).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// QueriesFile overrides the embedded query corpus.
	QueriesFile string `json:"queries_file,omitempty" yaml:"queries_file,omitempty"`
}

// ProbeConfig controls the agent quality probe.
type ProbeConfig struct {
	// CallTimeout bounds each agent call.
	CallTimeout time.Duration `json:"call_timeout" yaml:"call_timeout"`

	// LatencyTarget is the per-question latency above which the latency
	// sub-score decays (default 5s).
	LatencyTarget time.Duration `json:"latency_target" yaml:"latency_target"`

	// Concurrency is the number of questions in flight (default 1).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// QuestionsFile overrides the embedded question bank.
	QuestionsFile string `json:"questions_file,omitempty" yaml:"questions_file,omitempty"`
}

// AuditConfig controls the integrity auditor.
type AuditConfig struct {
	// SampleSize audits a sample instead of the full corpus when > 0.
	SampleSize int `json:"sample_size" yaml:"sample_size"`

	// CitationCeiling is the implausibility ceiling for citation counts
	// (default 100000).
	CitationCeiling int `json:"citation_ceiling" yaml:"citation_ceiling"`

	// NearDupLimit disables the pairwise near-duplicate pass above this
	// corpus size (default 2000).
	NearDupLimit int `json:"near_dup_limit" yaml:"near_dup_limit"`

	// Penalties are score deductions per percentage point of defect rate.
	MissingFieldPenalty    float64 `json:"missing_field_penalty" yaml:"missing_field_penalty"`
	DuplicateTitlePenalty  float64 `json:"duplicate_title_penalty" yaml:"duplicate_title_penalty"`
	InvalidCitationPenalty float64 `json:"invalid_citation_penalty" yaml:"invalid_citation_penalty"`
}

// ScoreWeights weights the four sub-scores in the fused overall score.
// Weights are normalized before use; defaults are 0.25 each.
type ScoreWeights struct {
	Operations float64 `json:"operations" yaml:"operations"`
	Search     float64 `json:"search" yaml:"search"`
	AI         float64 `json:"ai" yaml:"ai"`
	Integrity  float64 `json:"integrity" yaml:"integrity"`
}

// HarnessConfig groups all component configurations for one run.
type HarnessConfig struct {
	KB        KBConfig        `json:"kb" yaml:"kb"`
	Agent     AgentConfig     `json:"agent" yaml:"agent"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Ingest    IngestConfig    `json:"ingest" yaml:"ingest"`
	Bench     BenchConfig     `json:"bench" yaml:"bench"`
	Probe     ProbeConfig     `json:"probe" yaml:"probe"`
	Audit     AuditConfig     `json:"audit" yaml:"audit"`
	Weights   ScoreWeights    `json:"weights" yaml:"weights"`

	// Records is the number of synthetic papers to generate.
	Records int `json:"records" yaml:"records"`

	// QueryProbes is the number of benchmark queries to issue.
	QueryProbes int `json:"query_probes" yaml:"query_probes"`

	// AIProbes is the number of agent questions to issue.
	AIProbes int `json:"ai_probes" yaml:"ai_probes"`

	// TestOnly skips generation and ingestion.
	TestOnly bool `json:"test_only" yaml:"test_only"`
}
