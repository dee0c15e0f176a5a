// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bench benchmarks semantic search latency and success against
// the storage collaborator using a fixed, classed query corpus.
package bench

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/meshintel/kbcheck/internal/kb"
	"github.com/meshintel/kbcheck/pkg/types"
)

const defaultTopK = 10

// Benchmark issues queries from a template corpus against storage.
type Benchmark struct {
	store   kb.Storage
	cfg     types.BenchConfig
	queries []QueryTemplate
}

// NewBenchmark builds a benchmark over store. The query corpus is
// loaded from cfg.QueriesFile, falling back to the built-in set.
func NewBenchmark(store kb.Storage, cfg types.BenchConfig) (*Benchmark, error) {
	queries, err := LoadQueries(cfg.QueriesFile)
	if err != nil {
		return nil, err
	}
	if cfg.TopK <= 0 {
		cfg.TopK = defaultTopK
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Benchmark{store: store, cfg: cfg, queries: queries}, nil
}

// Run issues k probes, selecting queries cyclically from the corpus.
// Failed calls count in the success-rate denominator but are excluded
// from latency statistics. Cancelling ctx stops issuing new queries;
// probes already issued are kept.
func (b *Benchmark) Run(ctx context.Context, k int, w io.Writer) types.BenchReport {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		probes = make([]types.QueryProbe, 0, k)
	)
	sem := make(chan struct{}, b.cfg.Concurrency)

	for i := 0; i < k; i++ {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "cancelled after %d/%d queries\n", i, k)
			break
		}
		tmpl := b.queries[i%len(b.queries)]

		sem <- struct{}{}
		wg.Add(1)
		go func(tmpl QueryTemplate) {
			defer wg.Done()
			defer func() { <-sem }()

			probe := b.probe(ctx, tmpl)

			mu.Lock()
			probes = append(probes, probe)
			status := "ok"
			if !probe.OK {
				status = "failed"
			}
			fmt.Fprintf(w, "query [%s] %s (%d results, %v)\n",
				tmpl.Class, status, probe.Results, probe.Latency.Round(time.Millisecond))
			mu.Unlock()
		}(tmpl)
	}

	wg.Wait()
	return summarize(probes)
}

// probe issues a single timeout-bounded search call.
func (b *Benchmark) probe(ctx context.Context, tmpl QueryTemplate) types.QueryProbe {
	probe := types.QueryProbe{Query: tmpl.Query, Class: tmpl.Class}

	callCtx := ctx
	var cancel context.CancelFunc
	if b.cfg.CallTimeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, b.cfg.CallTimeout)
		defer cancel()
	}

	start := time.Now()
	hits, err := b.store.Query(callCtx, tmpl.Query, nil, b.cfg.TopK)
	probe.Latency = time.Since(start)

	if err != nil {
		probe.Err = err.Error()
		return probe
	}

	probe.OK = true
	probe.Results = len(hits)
	if len(hits) > 0 {
		probe.TopScore = hits[0].Score
	}
	return probe
}

// summarize computes the success rate over all probes and latency
// statistics over succeeded probes only.
func summarize(probes []types.QueryProbe) types.BenchReport {
	report := types.BenchReport{Probes: probes}
	if len(probes) == 0 {
		return report
	}

	var (
		succeeded int
		total     time.Duration
	)
	for _, p := range probes {
		if !p.OK {
			continue
		}
		succeeded++
		total += p.Latency
		if report.MinLatency == 0 || p.Latency < report.MinLatency {
			report.MinLatency = p.Latency
		}
		if p.Latency > report.MaxLatency {
			report.MaxLatency = p.Latency
		}
	}

	report.SuccessRate = float64(succeeded) / float64(len(probes))
	if succeeded > 0 {
		report.MeanLatency = total / time.Duration(succeeded)
	}
	return report
}
