// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package probe

import (
	"strings"
	"time"
)

// Sub-score weights and the length-adequacy band. Fixed constants are
// the contract; tests assert them directly.
const (
	lengthWeight  = 0.4
	termsWeight   = 0.4
	latencyWeight = 0.2

	minAdequateWords = 40
	maxAdequateWords = 200
)

// lengthScore gives full credit for responses within the adequate
// word-count band and decays linearly outside it. Returns [0,1].
func lengthScore(response string) float64 {
	words := len(strings.Fields(response))
	switch {
	case words == 0:
		return 0
	case words < minAdequateWords:
		return float64(words) / minAdequateWords
	case words > maxAdequateWords:
		return maxAdequateWords / float64(words)
	default:
		return 1
	}
}

// termScore is the fraction of expected domain terms present in the
// response, matched case-insensitively. Returns [0,1]; an empty term
// list scores full credit.
func termScore(response string, expected []string) float64 {
	if len(expected) == 0 {
		return 1
	}
	lower := strings.ToLower(response)
	found := 0
	for _, term := range expected {
		if strings.Contains(lower, strings.ToLower(term)) {
			found++
		}
	}
	return float64(found) / float64(len(expected))
}

// latencyScore gives full credit up to target and decays as
// target/actual beyond it. Returns (0,1].
func latencyScore(latency, target time.Duration) float64 {
	if target <= 0 || latency <= target {
		return 1
	}
	return float64(target) / float64(latency)
}

// responseScore combines the three sub-scores into a 0-100 quality
// score. Pure: identical inputs always yield identical scores.
func responseScore(response string, expected []string, latency, target time.Duration) float64 {
	s := lengthWeight*lengthScore(response) +
		termsWeight*termScore(response, expected) +
		latencyWeight*latencyScore(latency, target)
	return clamp(s*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
