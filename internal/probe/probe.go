// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probe measures the AI agent's response quality over a fixed
// bank of research-domain questions.
package probe

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/meshintel/kbcheck/internal/kb"
	"github.com/meshintel/kbcheck/pkg/types"
)

const defaultLatencyTarget = 5 * time.Second

// Prober issues questions to the agent collaborator and scores each
// response with deterministic heuristics.
type Prober struct {
	agent     kb.Agent
	cfg       types.ProbeConfig
	questions []Question
}

// NewProber builds a prober over agent. The question bank is loaded
// from cfg.QuestionsFile, falling back to the built-in set.
func NewProber(agent kb.Agent, cfg types.ProbeConfig) (*Prober, error) {
	questions, err := LoadQuestions(cfg.QuestionsFile)
	if err != nil {
		return nil, err
	}
	if cfg.LatencyTarget <= 0 {
		cfg.LatencyTarget = defaultLatencyTarget
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Prober{agent: agent, cfg: cfg, questions: questions}, nil
}

// Run issues m questions, cycling through the bank. A question that
// errors scores zero and stays in the mean, so an unresponsive agent
// visibly depresses the aggregate.
func (p *Prober) Run(ctx context.Context, m int, w io.Writer) types.ProbeReport {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		probes = make([]types.AgentProbe, 0, m)
	)
	sem := make(chan struct{}, p.cfg.Concurrency)

	for i := 0; i < m; i++ {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "cancelled after %d/%d questions\n", i, m)
			break
		}
		q := p.questions[i%len(p.questions)]

		sem <- struct{}{}
		wg.Add(1)
		go func(q Question) {
			defer wg.Done()
			defer func() { <-sem }()

			probe := p.probe(ctx, q)

			mu.Lock()
			probes = append(probes, probe)
			fmt.Fprintf(w, "question [%s] score %.1f (%v)\n",
				q.Domain, probe.Score, probe.Latency.Round(time.Millisecond))
			mu.Unlock()
		}(q)
	}

	wg.Wait()

	report := types.ProbeReport{Probes: probes}
	if len(probes) > 0 {
		var total float64
		for _, pr := range probes {
			total += pr.Score
		}
		report.MeanScore = total / float64(len(probes))
	}
	return report
}

// probe asks a single timeout-bounded question and scores the response.
func (p *Prober) probe(ctx context.Context, q Question) types.AgentProbe {
	probe := types.AgentProbe{Question: q.Text, Domain: q.Domain}

	callCtx := ctx
	var cancel context.CancelFunc
	if p.cfg.CallTimeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, p.cfg.CallTimeout)
		defer cancel()
	}

	start := time.Now()
	response, err := p.agent.Ask(callCtx, q.Text)
	probe.Latency = time.Since(start)

	if err != nil {
		probe.Err = err.Error()
		return probe
	}

	probe.OK = true
	probe.Response = response
	probe.Score = responseScore(response, q.ExpectedTerms, probe.Latency, p.cfg.LatencyTarget)
	return probe
}
