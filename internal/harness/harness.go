// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harness runs the full verification sequence: ingestion
// profiling, search benchmarking, agent probing, and the integrity
// audit, fused into a single ScoreCard.
package harness

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/meshintel/kbcheck/internal/audit"
	"github.com/meshintel/kbcheck/internal/bench"
	"github.com/meshintel/kbcheck/internal/generate"
	"github.com/meshintel/kbcheck/internal/ingest"
	"github.com/meshintel/kbcheck/internal/kb"
	"github.com/meshintel/kbcheck/internal/probe"
	"github.com/meshintel/kbcheck/internal/score"
	"github.com/meshintel/kbcheck/pkg/types"
)

const pingTimeout = 10 * time.Second

// RunResult carries every phase report plus the fused ScoreCard.
type RunResult struct {
	Connected bool                  `json:"connected" yaml:"connected"`
	Ingestion types.IngestionReport `json:"ingestion" yaml:"ingestion"`
	Bench     types.BenchReport     `json:"bench" yaml:"bench"`
	Probe     types.ProbeReport     `json:"probe" yaml:"probe"`
	Audit     types.AuditReport     `json:"audit" yaml:"audit"`
	Card      types.ScoreCard       `json:"scorecard" yaml:"scorecard"`
}

// Harness wires the phase runners to the collaborators for one run.
// Construct once per run; configuration is never mutated afterwards.
type Harness struct {
	store kb.Storage
	agent kb.Agent
	cfg   types.HarnessConfig
}

// New builds a harness over the given collaborators.
func New(store kb.Storage, agent kb.Agent, cfg types.HarnessConfig) *Harness {
	if cfg.Weights == (types.ScoreWeights{}) {
		cfg.Weights = score.DefaultWeights()
	}
	return &Harness{store: store, agent: agent, cfg: cfg}
}

// Run executes all phases in order and always returns a ScoreCard:
// phase-level failures degrade sub-scores instead of aborting, and a
// cancelled ctx yields a partial card from whatever was collected.
func (h *Harness) Run(ctx context.Context, w io.Writer) (RunResult, error) {
	var result RunResult

	// Connectivity check feeds the operations score.
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := h.store.Ping(pingCtx)
	cancel()
	result.Connected = err == nil
	if err != nil {
		fmt.Fprintf(w, "warning: knowledge base unreachable: %v\n", err)
	}

	// Phase 1: generation and ingestion.
	if h.cfg.TestOnly {
		fmt.Fprintln(w, "test-only mode: skipping data generation")
	} else if result.Connected {
		fmt.Fprintf(w, "-- ingesting %d records --\n", h.cfg.Records)
		gen := generate.NewGenerator(h.cfg.Generator)
		profiler := ingest.NewProfiler(h.store, h.cfg.Ingest)
		result.Ingestion = profiler.Run(ctx, gen, h.cfg.Records, w)
	} else {
		fmt.Fprintln(w, "skipping ingestion: knowledge base unreachable")
	}

	// Phase 2: search benchmark.
	fmt.Fprintf(w, "-- benchmarking %d queries --\n", h.cfg.QueryProbes)
	b, err := bench.NewBenchmark(h.store, h.cfg.Bench)
	if err != nil {
		return result, fmt.Errorf("configuring benchmark: %w", err)
	}
	result.Bench = b.Run(ctx, h.cfg.QueryProbes, w)

	// Phase 3: agent quality probe.
	fmt.Fprintf(w, "-- probing agent with %d questions --\n", h.cfg.AIProbes)
	p, err := probe.NewProber(h.agent, h.cfg.Probe)
	if err != nil {
		return result, fmt.Errorf("configuring prober: %w", err)
	}
	result.Probe = p.Run(ctx, h.cfg.AIProbes, w)

	// Phase 4: integrity audit. A failed scan is a phase-level
	// connectivity failure: integrity defaults to zero.
	fmt.Fprintln(w, "-- auditing corpus integrity --")
	auditReport, err := audit.NewAuditor(h.store, h.cfg.Audit).Run(ctx, w)
	if err != nil {
		fmt.Fprintf(w, "warning: audit failed: %v\n", err)
		auditReport = types.AuditReport{}
	}
	result.Audit = auditReport

	result.Card = score.Aggregate(types.Scores{
		Operations: score.OperationsScore(result.Connected, result.Ingestion),
		Search:     score.SearchScore(result.Bench, h.cfg.Bench.LatencyTarget),
		AI:         result.Probe.MeanScore,
		Integrity:  integrityScore(result.Audit, err),
	}, h.cfg.Weights)

	return result, nil
}

// integrityScore zeroes the sub-score when the audit scan itself failed.
func integrityScore(report types.AuditReport, scanErr error) float64 {
	if scanErr != nil {
		return 0
	}
	return report.Score
}
