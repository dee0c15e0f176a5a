// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score fuses the four component metric sets into one overall
// score, a verdict tier, and a process exit code.
package score

import (
	"time"

	"github.com/meshintel/kbcheck/pkg/types"
)

// Verdict tier boundaries. Inclusive lower bound belongs to the higher
// tier: overall exactly 70 is healthy, exactly 50 is issues.
const (
	healthyThreshold = 70.0
	issuesThreshold  = 50.0
)

// DefaultWeights weights the four sub-scores equally.
func DefaultWeights() types.ScoreWeights {
	return types.ScoreWeights{Operations: 0.25, Search: 0.25, AI: 0.25, Integrity: 0.25}
}

// Aggregate fuses the four sub-scores into a ScoreCard. Pure: identical
// inputs always yield the identical card (modulo the timestamp). Sub
// scores are clamped to [0,100] before weighting and weights are
// normalized to sum to one.
func Aggregate(sub types.Scores, weights types.ScoreWeights) types.ScoreCard {
	sum := weights.Operations + weights.Search + weights.AI + weights.Integrity
	if sum <= 0 {
		weights = DefaultWeights()
		sum = 1
	}

	overall := (clamp(sub.Operations)*weights.Operations +
		clamp(sub.Search)*weights.Search +
		clamp(sub.AI)*weights.AI +
		clamp(sub.Integrity)*weights.Integrity) / sum

	verdict, exitCode := verdictFor(overall)

	return types.ScoreCard{
		Sub: types.Scores{
			Operations: clamp(sub.Operations),
			Search:     clamp(sub.Search),
			AI:         clamp(sub.AI),
			Integrity:  clamp(sub.Integrity),
		},
		Weights:   weights,
		Overall:   overall,
		Verdict:   verdict,
		ExitCode:  exitCode,
		Timestamp: time.Now().UTC(),
	}
}

// verdictFor maps an overall score to its tier and exit code. This
// mapping is exact: >=70 healthy/0, >=50 issues/1, else critical/2.
func verdictFor(overall float64) (types.Verdict, int) {
	switch {
	case overall >= healthyThreshold:
		return types.VerdictHealthy, 0
	case overall >= issuesThreshold:
		return types.VerdictIssues, 1
	default:
		return types.VerdictCritical, 2
	}
}

// OperationsScore derives the operations sub-score from connectivity
// and the batch success rate. With no batches attempted (test-only or
// an empty run) the score reflects connectivity alone: "no data" is a
// defined outcome, not a failure.
func OperationsScore(connected bool, report types.IngestionReport) float64 {
	if !connected {
		return 0
	}
	if report.TotalBatches == 0 {
		return 100
	}
	return 100 * float64(report.SucceededBatches) / float64(report.TotalBatches)
}

// SearchScore derives the search sub-score from the benchmark success
// rate, decayed when mean latency over succeeded calls exceeds target.
func SearchScore(report types.BenchReport, target time.Duration) float64 {
	base := 100 * report.SuccessRate
	if target > 0 && report.MeanLatency > target {
		base *= float64(target) / float64(report.MeanLatency)
	}
	return base
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
