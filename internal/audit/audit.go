// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit scans the resident corpus for structural and
// statistical data-quality defects and scores corpus integrity.
package audit

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/meshintel/kbcheck/internal/kb"
	"github.com/meshintel/kbcheck/pkg/types"
)

const (
	defaultCitationCeiling = 100000
	defaultNearDupLimit    = 2000

	defaultMissingPenalty   = 2.0
	defaultDuplicatePenalty = 1.5
	defaultInvalidPenalty   = 1.0

	// nearDupThreshold is the normalized-title similarity above which
	// two distinct titles count as duplicates.
	nearDupThreshold = 0.90

	// skewThreshold flags a distribution-skew finding when one research
	// field holds more than this fraction of the corpus. Diagnostic
	// only: the finding carries zero penalty.
	skewThreshold = 0.60
)

// Auditor reads the corpus through the storage collaborator and
// computes defect rates. Scoring itself is pure (see Evaluate).
type Auditor struct {
	store kb.Storage
	cfg   types.AuditConfig
}

// NewAuditor builds an auditor over store with cfg defaults applied.
func NewAuditor(store kb.Storage, cfg types.AuditConfig) *Auditor {
	return &Auditor{store: store, cfg: withDefaults(cfg)}
}

func withDefaults(cfg types.AuditConfig) types.AuditConfig {
	if cfg.CitationCeiling <= 0 {
		cfg.CitationCeiling = defaultCitationCeiling
	}
	if cfg.NearDupLimit <= 0 {
		cfg.NearDupLimit = defaultNearDupLimit
	}
	if cfg.MissingFieldPenalty <= 0 {
		cfg.MissingFieldPenalty = defaultMissingPenalty
	}
	if cfg.DuplicateTitlePenalty <= 0 {
		cfg.DuplicateTitlePenalty = defaultDuplicatePenalty
	}
	if cfg.InvalidCitationPenalty <= 0 {
		cfg.InvalidCitationPenalty = defaultInvalidPenalty
	}
	return cfg
}

// Run reads the corpus (or the configured sample) and evaluates it.
// The read is the only I/O; everything after is a pure function of the
// scanned records.
func (a *Auditor) Run(ctx context.Context, w io.Writer) (types.AuditReport, error) {
	var (
		records []types.PaperRecord
		err     error
	)
	if a.cfg.SampleSize > 0 {
		records, err = a.store.Sample(ctx, a.cfg.SampleSize)
	} else {
		records, err = a.store.ScanAll(ctx)
	}
	if err != nil {
		return types.AuditReport{}, fmt.Errorf("reading corpus: %w", err)
	}

	report := Evaluate(records, a.cfg)
	fmt.Fprintf(w, "audited %d records: integrity %.1f/100\n", report.Total, report.Score)
	return report, nil
}

// Evaluate computes defect rates, histograms, and the integrity score
// for a corpus. Pure: no I/O, no retries. Zero config fields take the
// package defaults.
func Evaluate(records []types.PaperRecord, cfg types.AuditConfig) types.AuditReport {
	cfg = withDefaults(cfg)
	report := types.AuditReport{
		Total:             len(records),
		CategoryHistogram: map[string]int{},
		FieldHistogram:    map[string]int{},
	}
	if len(records) == 0 {
		report.Score = 100
		return report
	}

	var missing, invalid int
	titles := make([]string, len(records))
	titleCounts := make(map[string]int, len(records))

	for i, r := range records {
		if r.HasMissingField() {
			missing++
		}
		if r.CitationCount < 0 || r.CitationCount > cfg.CitationCeiling {
			invalid++
		}
		titles[i] = normalizeTitle(r.Title)
		titleCounts[titles[i]]++
		report.CategoryHistogram[r.Category]++
		report.FieldHistogram[r.ResearchField]++
	}

	duplicates := countDuplicates(titles, titleCounts, len(records) <= cfg.NearDupLimit)

	total := float64(len(records))
	findings := []types.IntegrityFinding{
		{Kind: types.FindingMissingField, Rate: float64(missing) / total, Affected: missing, Penalty: cfg.MissingFieldPenalty},
		{Kind: types.FindingDuplicateTitle, Rate: float64(duplicates) / total, Affected: duplicates, Penalty: cfg.DuplicateTitlePenalty},
		{Kind: types.FindingInvalidCitation, Rate: float64(invalid) / total, Affected: invalid, Penalty: cfg.InvalidCitationPenalty},
	}

	if kind, affected, rate := fieldSkew(report.FieldHistogram, len(records)); kind != "" {
		findings = append(findings, types.IntegrityFinding{
			Kind: kind, Rate: rate, Affected: affected, Penalty: 0,
		})
	}

	report.Findings = findings
	report.Score = integrityScore(findings)
	return report
}

// integrityScore deducts each finding's penalty per percentage point of
// its rate from 100, floored at zero.
func integrityScore(findings []types.IntegrityFinding) float64 {
	score := 100.0
	for _, f := range findings {
		score -= f.Rate * 100 * f.Penalty
	}
	if score < 0 {
		return 0
	}
	return score
}

// countDuplicates counts records whose normalized title collides with
// another record's. When nearDup is set, distinct titles with
// levenshtein similarity above the threshold also count.
func countDuplicates(titles []string, titleCounts map[string]int, nearDup bool) int {
	count := 0
	for _, c := range titleCounts {
		if c > 1 {
			count += c
		}
	}

	if !nearDup {
		return count
	}

	// Pairwise pass over distinct titles that are not already exact
	// duplicates. Bounded by cfg.NearDupLimit records.
	distinct := make([]string, 0, len(titleCounts))
	for t, c := range titleCounts {
		if c == 1 {
			distinct = append(distinct, t)
		}
	}
	near := make(map[string]bool)
	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			if titleSimilarity(distinct[i], distinct[j]) >= nearDupThreshold {
				near[distinct[i]] = true
				near[distinct[j]] = true
			}
		}
	}
	return count + len(near)
}

// titleSimilarity returns 1 - distance/maxLen over normalized titles.
func titleSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.Distance(a, b, nil)
	return 1 - float64(dist)/float64(maxLen)
}

// fieldSkew reports a skew finding when a single field dominates.
func fieldSkew(hist map[string]int, total int) (types.FindingKind, int, float64) {
	for _, c := range hist {
		if rate := float64(c) / float64(total); rate > skewThreshold {
			return types.FindingDistributionSkew, c, rate
		}
	}
	return "", 0, 0
}

// normalizeTitle case-folds and collapses internal whitespace.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
