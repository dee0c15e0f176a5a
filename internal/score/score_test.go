// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meshintel/kbcheck/pkg/types"
)

func even(v float64) types.Scores {
	return types.Scores{Operations: v, Search: v, AI: v, Integrity: v}
}

func TestAggregateVerdictBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		overall  float64
		verdict  types.Verdict
		exitCode int
	}{
		{name: "healthy boundary", overall: 70.0, verdict: types.VerdictHealthy, exitCode: 0},
		{name: "just under healthy", overall: 69.9, verdict: types.VerdictIssues, exitCode: 1},
		{name: "issues boundary", overall: 50.0, verdict: types.VerdictIssues, exitCode: 1},
		{name: "just under issues", overall: 49.9, verdict: types.VerdictCritical, exitCode: 2},
		{name: "perfect", overall: 100, verdict: types.VerdictHealthy, exitCode: 0},
		{name: "zero", overall: 0, verdict: types.VerdictCritical, exitCode: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := Aggregate(even(tt.overall), DefaultWeights())
			assert.InDelta(t, tt.overall, card.Overall, 1e-9)
			assert.Equal(t, tt.verdict, card.Verdict)
			assert.Equal(t, tt.exitCode, card.ExitCode)
		})
	}
}

func TestAggregateWeighting(t *testing.T) {
	sub := types.Scores{Operations: 100, Search: 80, AI: 60, Integrity: 40}

	t.Run("equal weights average", func(t *testing.T) {
		card := Aggregate(sub, DefaultWeights())
		assert.InDelta(t, 70, card.Overall, 1e-9)
	})

	t.Run("unnormalized weights are normalized", func(t *testing.T) {
		card := Aggregate(sub, types.ScoreWeights{Operations: 2, Search: 2, AI: 2, Integrity: 2})
		assert.InDelta(t, 70, card.Overall, 1e-9)
	})

	t.Run("zero weights fall back to defaults", func(t *testing.T) {
		card := Aggregate(sub, types.ScoreWeights{})
		assert.InDelta(t, 70, card.Overall, 1e-9)
		assert.Equal(t, DefaultWeights(), card.Weights)
	})

	t.Run("skewed weights", func(t *testing.T) {
		card := Aggregate(sub, types.ScoreWeights{Operations: 1})
		assert.InDelta(t, 100, card.Overall, 1e-9)
	})
}

func TestAggregateClampsSubScores(t *testing.T) {
	card := Aggregate(types.Scores{Operations: 150, Search: -20, AI: 50, Integrity: 50}, DefaultWeights())
	assert.InDelta(t, 100, card.Sub.Operations, 1e-9)
	assert.InDelta(t, 0, card.Sub.Search, 1e-9)
	assert.InDelta(t, 50, card.Overall, 1e-9)
}

func TestAggregatePurity(t *testing.T) {
	sub := types.Scores{Operations: 91, Search: 72.5, AI: 33.3, Integrity: 88}
	a := Aggregate(sub, DefaultWeights())
	b := Aggregate(sub, DefaultWeights())
	assert.Equal(t, a.Overall, b.Overall)
	assert.Equal(t, a.Verdict, b.Verdict)
	assert.Equal(t, a.ExitCode, b.ExitCode)
}

func TestOperationsScore(t *testing.T) {
	tests := []struct {
		name      string
		connected bool
		report    types.IngestionReport
		want      float64
	}{
		{name: "unreachable", connected: false, want: 0},
		{name: "connected with no batches", connected: true, want: 100},
		{
			name:      "all batches succeeded",
			connected: true,
			report:    types.IngestionReport{TotalBatches: 10, SucceededBatches: 10},
			want:      100,
		},
		{
			name:      "partial failure",
			connected: true,
			report:    types.IngestionReport{TotalBatches: 10, SucceededBatches: 7},
			want:      70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OperationsScore(tt.connected, tt.report), 1e-9)
		})
	}
}

func TestSearchScore(t *testing.T) {
	target := 2 * time.Second

	t.Run("success rate scales", func(t *testing.T) {
		got := SearchScore(types.BenchReport{SuccessRate: 0.9, MeanLatency: time.Second}, target)
		assert.InDelta(t, 90, got, 1e-9)
	})

	t.Run("slow mean latency decays", func(t *testing.T) {
		got := SearchScore(types.BenchReport{SuccessRate: 1, MeanLatency: 4 * time.Second}, target)
		assert.InDelta(t, 50, got, 1e-9)
	})

	t.Run("no target means no decay", func(t *testing.T) {
		got := SearchScore(types.BenchReport{SuccessRate: 1, MeanLatency: time.Minute}, 0)
		assert.InDelta(t, 100, got, 1e-9)
	})
}
