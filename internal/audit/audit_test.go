// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/kbcheck/pkg/types"
)

// Fixture vocabulary chosen so no two generated titles come near the
// similarity threshold.
var (
	fixtureMethods = []string{
		"Spectral", "Bayesian", "Tropical", "Variational", "Monotone",
		"Adversarial", "Zeroth-Order", "Combinatorial", "Quasiconvex", "Hypergraph",
	}
	fixtureTopics = []string{
		"Genomics", "Coral Reefs", "Power Grids", "Sign Language", "Orbital Debris",
		"Credit Markets", "Rainforest Canopies", "Robotic Surgery", "Ice Cores", "Vaccine Design",
	}
)

func cleanRecord(i int) types.PaperRecord {
	return types.PaperRecord{
		ID:            fmt.Sprintf("id-%04d", i),
		Title:         fmt.Sprintf("%s Methods for %s Analysis", fixtureMethods[i%10], fixtureTopics[i/10%10]),
		Authors:       []string{"Chen, W."},
		Abstract:      "We study indexing strategies for dense corpora.",
		Category:      "cs.IR",
		ResearchField: fmt.Sprintf("Field %d", i%5),
		CitationCount: 10 + i,
		Journal:       "JIR",
		PaperType:     "Journal Article",
		ArxivID:       "2401.1000",
		PublishedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func cleanCorpus(n int) []types.PaperRecord {
	records := make([]types.PaperRecord, n)
	for i := range records {
		records[i] = cleanRecord(i)
	}
	return records
}

func findingByKind(t *testing.T, report types.AuditReport, kind types.FindingKind) types.IntegrityFinding {
	t.Helper()
	for _, f := range report.Findings {
		if f.Kind == kind {
			return f
		}
	}
	t.Fatalf("no %s finding in report", kind)
	return types.IntegrityFinding{}
}

func TestEvaluateCleanCorpus(t *testing.T) {
	report := Evaluate(cleanCorpus(100), types.AuditConfig{CitationCeiling: 100000})

	assert.Equal(t, 100, report.Total)
	assert.InDelta(t, 100, report.Score, 1e-9)
	for _, f := range report.Findings {
		assert.Zero(t, f.Affected, "clean corpus produced %s finding", f.Kind)
	}
}

func TestEvaluateEmptyCorpus(t *testing.T) {
	report := Evaluate(nil, types.AuditConfig{})
	assert.Zero(t, report.Total)
	assert.InDelta(t, 100, report.Score, 1e-9)
	assert.Empty(t, report.Findings)
}

func TestEvaluateMissingFields(t *testing.T) {
	// 5 of 100 records missing the abstract: rate 5%, penalty 2.0 per
	// point, score 90.
	records := cleanCorpus(100)
	for i := 0; i < 5; i++ {
		records[i].Abstract = ""
	}

	report := Evaluate(records, types.AuditConfig{
		CitationCeiling:     100000,
		MissingFieldPenalty: 2.0,
	})

	f := findingByKind(t, report, types.FindingMissingField)
	assert.Equal(t, 5, f.Affected)
	assert.InDelta(t, 0.05, f.Rate, 1e-9)
	assert.InDelta(t, 90, report.Score, 1e-9)
}

func TestEvaluateDuplicateTitles(t *testing.T) {
	t.Run("exact duplicates after normalization", func(t *testing.T) {
		records := cleanCorpus(100)
		records[1].Title = records[0].Title
		records[2].Title = "  " + records[0].Title + "  "

		report := Evaluate(records, types.AuditConfig{CitationCeiling: 100000})

		f := findingByKind(t, report, types.FindingDuplicateTitle)
		assert.Equal(t, 3, f.Affected, "all colliding records count")
		// Rate 3%, penalty 1.5 per point.
		assert.InDelta(t, 100-3*1.5, report.Score, 1e-9)
	})

	t.Run("near-duplicate pair", func(t *testing.T) {
		records := cleanCorpus(50)
		records[0].Title = "Deep Learning for Protein Structure Prediction in Genomics"
		records[1].Title = "Deep Learning for Protein Structure Predictions in Genomics"

		report := Evaluate(records, types.AuditConfig{CitationCeiling: 100000, NearDupLimit: 2000})

		f := findingByKind(t, report, types.FindingDuplicateTitle)
		assert.Equal(t, 2, f.Affected, "both near neighbors count")
	})

	t.Run("near-dup pass skipped above the corpus bound", func(t *testing.T) {
		records := cleanCorpus(50)
		records[0].Title = "Deep Learning for Protein Structure Prediction in Genomics"
		records[1].Title = "Deep Learning for Protein Structure Predictions in Genomics"

		report := Evaluate(records, types.AuditConfig{CitationCeiling: 100000, NearDupLimit: 10})

		f := findingByKind(t, report, types.FindingDuplicateTitle)
		assert.Zero(t, f.Affected, "large corpora get the exact-match pass only")
	})
}

func TestEvaluateInvalidCitations(t *testing.T) {
	records := cleanCorpus(100)
	records[0].CitationCount = -3
	records[1].CitationCount = 2000000

	report := Evaluate(records, types.AuditConfig{CitationCeiling: 100000})

	f := findingByKind(t, report, types.FindingInvalidCitation)
	assert.Equal(t, 2, f.Affected)
	// Rate 2%, penalty 1.0 per point.
	assert.InDelta(t, 98, report.Score, 1e-9)
}

func TestEvaluateDistributionSkew(t *testing.T) {
	records := cleanCorpus(100)
	for i := range records {
		if i < 70 {
			records[i].ResearchField = "Machine Learning"
		}
	}

	report := Evaluate(records, types.AuditConfig{CitationCeiling: 100000})

	f := findingByKind(t, report, types.FindingDistributionSkew)
	assert.Equal(t, 70, f.Affected)
	assert.InDelta(t, 0.70, f.Rate, 1e-9)
	assert.Zero(t, f.Penalty, "skew is diagnostic only")
	assert.InDelta(t, 100, report.Score, 1e-9, "skew must not move the score")
}

func TestEvaluateScoreFloor(t *testing.T) {
	// Every record defective on every axis drives the raw score far
	// below zero; the report floors at 0.
	records := cleanCorpus(10)
	for i := range records {
		records[i].Abstract = ""
		records[i].CitationCount = -1
		records[i].Title = "Same Title"
	}

	report := Evaluate(records, types.AuditConfig{CitationCeiling: 100000})
	assert.Zero(t, report.Score)
}

func TestEvaluateHistograms(t *testing.T) {
	records := cleanCorpus(10)
	report := Evaluate(records, types.AuditConfig{CitationCeiling: 100000})

	assert.Equal(t, 10, report.CategoryHistogram["cs.IR"])
	total := 0
	for _, c := range report.FieldHistogram {
		total += c
	}
	assert.Equal(t, 10, total)
}

// scanStore serves a fixed corpus over the storage interface.
type scanStore struct {
	records []types.PaperRecord
	scanErr error
	sampled bool
}

func (s *scanStore) ScanAll(ctx context.Context) ([]types.PaperRecord, error) {
	return s.records, s.scanErr
}

func (s *scanStore) Sample(ctx context.Context, n int) ([]types.PaperRecord, error) {
	s.sampled = true
	if n < len(s.records) {
		return s.records[:n], s.scanErr
	}
	return s.records, s.scanErr
}

func (s *scanStore) BulkInsert(ctx context.Context, records []types.PaperRecord) error { return nil }
func (s *scanStore) Query(ctx context.Context, text string, filters map[string]string, topK int) ([]types.SearchHit, error) {
	return nil, nil
}
func (s *scanStore) Ping(ctx context.Context) error { return nil }

func TestAuditorRun(t *testing.T) {
	t.Run("full scan by default", func(t *testing.T) {
		store := &scanStore{records: cleanCorpus(20)}
		report, err := NewAuditor(store, types.AuditConfig{}).Run(context.Background(), io.Discard)
		require.NoError(t, err)
		assert.False(t, store.sampled)
		assert.Equal(t, 20, report.Total)
	})

	t.Run("sampling when configured", func(t *testing.T) {
		store := &scanStore{records: cleanCorpus(20)}
		report, err := NewAuditor(store, types.AuditConfig{SampleSize: 5}).Run(context.Background(), io.Discard)
		require.NoError(t, err)
		assert.True(t, store.sampled)
		assert.Equal(t, 5, report.Total)
	})

	t.Run("scan failure surfaces", func(t *testing.T) {
		store := &scanStore{scanErr: errors.New("connection refused")}
		_, err := NewAuditor(store, types.AuditConfig{}).Run(context.Background(), io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading corpus")
	})
}
