// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bench

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/kbcheck/pkg/types"
)

// fakeSearcher answers Query from a canned hit list, failing on call
// numbers listed in failCalls.
type fakeSearcher struct {
	mu        sync.Mutex
	calls     int
	queries   []string
	hits      []types.SearchHit
	failCalls map[int]bool
}

func (f *fakeSearcher) Query(ctx context.Context, text string, filters map[string]string, topK int) ([]types.SearchHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.queries = append(f.queries, text)
	if f.failCalls[f.calls] {
		return nil, errors.New("search backend error")
	}
	return f.hits, nil
}

func (f *fakeSearcher) BulkInsert(ctx context.Context, records []types.PaperRecord) error {
	return nil
}
func (f *fakeSearcher) ScanAll(ctx context.Context) ([]types.PaperRecord, error) { return nil, nil }
func (f *fakeSearcher) Sample(ctx context.Context, n int) ([]types.PaperRecord, error) {
	return nil, nil
}
func (f *fakeSearcher) Ping(ctx context.Context) error { return nil }

func newTestBenchmark(t *testing.T, store *fakeSearcher) *Benchmark {
	t.Helper()
	b, err := NewBenchmark(store, types.BenchConfig{TopK: 5})
	require.NoError(t, err)
	return b
}

func TestBenchmarkCyclicSelection(t *testing.T) {
	store := &fakeSearcher{}
	b := newTestBenchmark(t, store)

	n := len(DefaultQueries) + 3
	report := b.Run(context.Background(), n, io.Discard)

	require.Len(t, report.Probes, n)
	assert.Equal(t, n, store.calls)
	// Selection wraps around to the start of the corpus.
	assert.Equal(t, store.queries[0], store.queries[len(DefaultQueries)])
}

func TestBenchmarkSuccessRate(t *testing.T) {
	// 2 of 20 queries fail: success rate 0.90, failures excluded from
	// latency statistics.
	store := &fakeSearcher{
		hits:      []types.SearchHit{{Score: 0.95}, {Score: 0.5}},
		failCalls: map[int]bool{3: true, 11: true},
	}
	b := newTestBenchmark(t, store)

	report := b.Run(context.Background(), 20, io.Discard)

	require.Len(t, report.Probes, 20)
	assert.InDelta(t, 0.90, report.SuccessRate, 1e-9)
	assert.Greater(t, report.MeanLatency, time.Duration(0))
	assert.LessOrEqual(t, report.MinLatency, report.MeanLatency)
	assert.LessOrEqual(t, report.MeanLatency, report.MaxLatency)

	failed := 0
	for _, p := range report.Probes {
		if !p.OK {
			failed++
			assert.Contains(t, p.Err, "search backend error")
		} else {
			assert.Equal(t, 2, p.Results)
			assert.InDelta(t, 0.95, p.TopScore, 1e-9)
		}
	}
	assert.Equal(t, 2, failed)
}

func TestBenchmarkAllFailures(t *testing.T) {
	store := &fakeSearcher{failCalls: map[int]bool{1: true, 2: true, 3: true}}
	b := newTestBenchmark(t, store)

	report := b.Run(context.Background(), 3, io.Discard)

	assert.Zero(t, report.SuccessRate)
	assert.Zero(t, report.MeanLatency, "no successes means no latency stats")
	assert.Zero(t, report.MinLatency)
}

func TestBenchmarkZeroQueries(t *testing.T) {
	b := newTestBenchmark(t, &fakeSearcher{})
	report := b.Run(context.Background(), 0, io.Discard)
	assert.Empty(t, report.Probes)
	assert.Zero(t, report.SuccessRate)
}

func TestBenchmarkCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := newTestBenchmark(t, &fakeSearcher{})
	report := b.Run(ctx, 10, io.Discard)

	assert.Empty(t, report.Probes, "a pre-cancelled context issues no queries")
}

func TestLoadQueries(t *testing.T) {
	t.Run("empty path falls back to built-in corpus", func(t *testing.T) {
		queries, err := LoadQueries("")
		require.NoError(t, err)
		assert.Equal(t, DefaultQueries, queries)
	})

	t.Run("reads a YAML corpus", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "queries.yaml")
		content := `version: 1
queries:
  - query: "Find papers about quantum error correction"
    class: technical-term
  - query: "Show recent robotics surveys"
    class: semantic
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		queries, err := LoadQueries(path)
		require.NoError(t, err)
		require.Len(t, queries, 2)
		assert.Equal(t, "Find papers about quantum error correction", queries[0].Query)
		assert.Equal(t, types.ClassTechnicalTerm, queries[0].Class)
		assert.Equal(t, types.ClassSemantic, queries[1].Class)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadQueries(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
