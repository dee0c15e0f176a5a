// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package probe

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/kbcheck/pkg/types"
)

// fakeAgent answers every question with a canned response, failing on
// call numbers listed in failCalls.
type fakeAgent struct {
	mu        sync.Mutex
	calls     int
	questions []string
	response  string
	failCalls map[int]bool
}

func (f *fakeAgent) Ask(ctx context.Context, question string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.questions = append(f.questions, question)
	if f.failCalls[f.calls] {
		return "", errors.New("agent timeout")
	}
	return f.response, nil
}

// adequateResponse is inside the length band and mentions common
// expected terms from the built-in bank.
var adequateResponse = strings.Repeat("research into learning models shows papers with strong citation impact across the field ", 5)

func newTestProber(t *testing.T, agent *fakeAgent) *Prober {
	t.Helper()
	p, err := NewProber(agent, types.ProbeConfig{LatencyTarget: time.Second})
	require.NoError(t, err)
	return p
}

func TestProberCyclesQuestionBank(t *testing.T) {
	agent := &fakeAgent{response: adequateResponse}
	p := newTestProber(t, agent)

	n := len(DefaultQuestions) + 2
	report := p.Run(context.Background(), n, io.Discard)

	require.Len(t, report.Probes, n)
	assert.Equal(t, agent.questions[0], agent.questions[len(DefaultQuestions)])
}

func TestProberErroredProbeScoresZero(t *testing.T) {
	// 1 of 10 questions errors; its zero stays in the mean.
	agent := &fakeAgent{response: adequateResponse, failCalls: map[int]bool{4: true}}
	p := newTestProber(t, agent)

	report := p.Run(context.Background(), 10, io.Discard)

	require.Len(t, report.Probes, 10)
	var okScores float64
	failed := 0
	for _, pr := range report.Probes {
		if !pr.OK {
			failed++
			assert.Zero(t, pr.Score)
			assert.Contains(t, pr.Err, "agent timeout")
		} else {
			okScores += pr.Score
		}
	}
	require.Equal(t, 1, failed)
	assert.InDelta(t, okScores/10, report.MeanScore, 1e-9,
		"errored probes stay in the denominator")
}

func TestProberEmptyRun(t *testing.T) {
	p := newTestProber(t, &fakeAgent{response: adequateResponse})
	report := p.Run(context.Background(), 0, io.Discard)
	assert.Empty(t, report.Probes)
	assert.Zero(t, report.MeanScore)
}

func TestProberCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestProber(t, &fakeAgent{response: adequateResponse})
	report := p.Run(ctx, 5, io.Discard)
	assert.Empty(t, report.Probes)
}

func TestLengthScore(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     float64
	}{
		{name: "empty", response: "", want: 0},
		{name: "below band", response: words(20), want: 0.5},
		{name: "band floor", response: words(40), want: 1},
		{name: "inside band", response: words(120), want: 1},
		{name: "band ceiling", response: words(200), want: 1},
		{name: "above band", response: words(400), want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, lengthScore(tt.response), 1e-9)
		})
	}
}

func TestTermScore(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected []string
		want     float64
	}{
		{name: "no expected terms", response: "anything", expected: nil, want: 1},
		{name: "all present", response: "Deep Learning drives modern AI", expected: []string{"learning", "ai"}, want: 1},
		{name: "half present", response: "learning only", expected: []string{"learning", "vision"}, want: 0.5},
		{name: "none present", response: "unrelated text", expected: []string{"quantum", "robotics"}, want: 0},
		{name: "case insensitive", response: "TRANSFORMER models", expected: []string{"transformer"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, termScore(tt.response, tt.expected), 1e-9)
		})
	}
}

func TestLatencyScore(t *testing.T) {
	target := 5 * time.Second
	assert.InDelta(t, 1, latencyScore(time.Second, target), 1e-9)
	assert.InDelta(t, 1, latencyScore(target, target), 1e-9)
	assert.InDelta(t, 0.5, latencyScore(10*time.Second, target), 1e-9)
	assert.InDelta(t, 1, latencyScore(time.Second, 0), 1e-9, "no target means no latency penalty")
}

func TestResponseScore(t *testing.T) {
	target := 5 * time.Second

	t.Run("perfect response scores 100", func(t *testing.T) {
		response := words(100) + " learning ai"
		got := responseScore(response, []string{"learning", "ai"}, time.Second, target)
		assert.InDelta(t, 100, got, 1e-9)
	})

	t.Run("weights sum per sub-score", func(t *testing.T) {
		// Adequate length, no expected terms found, fast: 0.4 + 0 + 0.2.
		response := words(100)
		got := responseScore(response, []string{"zzz"}, time.Second, target)
		assert.InDelta(t, 60, got, 1e-9)
	})

	t.Run("empty response scores latency only", func(t *testing.T) {
		got := responseScore("", []string{"term"}, time.Second, target)
		assert.InDelta(t, 20, got, 1e-9)
	})

	t.Run("determinism", func(t *testing.T) {
		a := responseScore(adequateResponse, []string{"papers"}, 2*time.Second, target)
		b := responseScore(adequateResponse, []string{"papers"}, 2*time.Second, target)
		assert.Equal(t, a, b)
	})
}

// words builds a response of exactly n words.
func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}
