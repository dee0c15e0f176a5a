// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest drives bulk ingestion through the storage collaborator
// and profiles throughput and failure behavior batch by batch.
package ingest

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/meshintel/kbcheck/internal/kb"
	"github.com/meshintel/kbcheck/pkg/types"
)

const (
	defaultBatchSize   = 100
	defaultMaxAttempts = 3
	defaultBaseDelay   = 200 * time.Millisecond
)

// Source supplies records in pull order. The generator satisfies it.
type Source interface {
	Batch(n int) []types.PaperRecord
}

// Profiler partitions generated records into batches, submits each
// through the storage collaborator with bounded retries, and records
// per-batch outcomes. A single batch's permanent failure never aborts
// the run.
type Profiler struct {
	store kb.Storage
	cfg   types.IngestConfig
}

// NewProfiler builds a profiler over store with cfg.
func NewProfiler(store kb.Storage, cfg types.IngestConfig) *Profiler {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Retry.BaseDelay <= 0 {
		cfg.Retry.BaseDelay = defaultBaseDelay
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Profiler{store: store, cfg: cfg}
}

// Run pulls total records from src in batches and ingests them. A total
// of zero is not an error: it yields an empty report with zero batches.
// Cancelling ctx stops issuing new batches; batches already in flight
// finish and are recorded. Progress lines are written to w per batch.
func (p *Profiler) Run(ctx context.Context, src Source, total int, w io.Writer) types.IngestionReport {
	report := types.IngestionReport{}
	if total <= 0 {
		fmt.Fprintln(w, "no data to ingest")
		return report
	}

	numBatches := (total + p.cfg.BatchSize - 1) / p.cfg.BatchSize

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		completed int
	)
	outcomes := make([]types.IngestionOutcome, 0, numBatches)
	sem := make(chan struct{}, p.cfg.Concurrency)

	start := time.Now()

	for i := 0; i < numBatches; i++ {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "cancelled after %d/%d batches\n", i, numBatches)
			break
		}

		remaining := total - i*p.cfg.BatchSize
		size := p.cfg.BatchSize
		if remaining < size {
			size = remaining
		}

		// The generator is pulled on this goroutine only; workers get
		// an already-materialized batch.
		batch := types.GeneratedBatch{Index: i, Records: src.Batch(size)}

		sem <- struct{}{}
		wg.Add(1)
		go func(b types.GeneratedBatch) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := p.ingestBatch(ctx, b)

			mu.Lock()
			outcomes = append(outcomes, outcome)
			completed++
			fmt.Fprintf(w, "batch %d/%d %s (%d records, %d attempt(s), %v)\n",
				completed, numBatches, outcome.Status, outcome.Records,
				outcome.Attempts, outcome.Elapsed.Round(time.Millisecond))
			mu.Unlock()
		}(batch)
	}

	wg.Wait()
	report.Elapsed = time.Since(start)

	for _, o := range outcomes {
		report.Outcomes = append(report.Outcomes, o)
		report.TotalBatches++
		report.Retries += o.Attempts - 1
		if o.Status == types.BatchSucceeded {
			report.SucceededBatches++
			report.SucceededRecords += o.Records
			if rate := float64(o.Records) / o.Elapsed.Seconds(); rate > report.PeakBatchRate {
				report.PeakBatchRate = rate
			}
		} else {
			report.FailedBatches++
			report.FailedRecords += o.Records
		}
	}

	if report.Elapsed > 0 {
		report.Throughput = float64(report.SucceededRecords) / report.Elapsed.Seconds()
	}
	return report
}

// ingestBatch attempts one batch up to the retry limit with exponential
// backoff between attempts. Backoff waits are context-aware and apply to
// this batch only.
func (p *Profiler) ingestBatch(ctx context.Context, batch types.GeneratedBatch) types.IngestionOutcome {
	outcome := types.IngestionOutcome{
		BatchIndex: batch.Index,
		Records:    len(batch.Records),
	}

	start := time.Now()
	var lastErr error

	for attempt := 0; attempt < p.cfg.Retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * p.cfg.Retry.BaseDelay
			select {
			case <-ctx.Done():
				outcome.Attempts = attempt
				outcome.Elapsed = time.Since(start)
				outcome.Status = types.BatchFailed
				outcome.Err = ctx.Err().Error()
				return outcome
			case <-time.After(backoff):
			}
		}

		outcome.Attempts = attempt + 1
		callCtx := ctx
		var cancel context.CancelFunc
		if p.cfg.CallTimeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, p.cfg.CallTimeout)
		}
		lastErr = p.store.BulkInsert(callCtx, batch.Records)
		if cancel != nil {
			cancel()
		}

		if lastErr == nil {
			outcome.Elapsed = time.Since(start)
			outcome.Status = types.BatchSucceeded
			return outcome
		}
		if ctx.Err() != nil {
			break
		}
	}

	outcome.Elapsed = time.Since(start)
	outcome.Status = types.BatchFailed
	if lastErr != nil {
		outcome.Err = fmt.Sprintf("batch %d failed after %d attempt(s): %v",
			batch.Index, outcome.Attempts, lastErr)
	}
	return outcome
}
