// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// BatchStatus is the terminal state of one ingestion batch.
type BatchStatus string

const (
	BatchSucceeded BatchStatus = "succeeded"
	BatchFailed    BatchStatus = "failed"
)

// IngestionOutcome records the result of one batch, successful or not.
type IngestionOutcome struct {
	BatchIndex int           `json:"batch_index" yaml:"batch_index"`
	Records    int           `json:"records" yaml:"records"`
	Attempts   int           `json:"attempts" yaml:"attempts"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	Status     BatchStatus   `json:"status" yaml:"status"`
	Err        string        `json:"err,omitempty" yaml:"err,omitempty"`
}

// IngestionReport aggregates all batch outcomes from one ingestion run.
type IngestionReport struct {
	Outcomes         []IngestionOutcome `json:"outcomes" yaml:"outcomes"`
	TotalBatches     int                `json:"total_batches" yaml:"total_batches"`
	SucceededBatches int                `json:"succeeded_batches" yaml:"succeeded_batches"`
	FailedBatches    int                `json:"failed_batches" yaml:"failed_batches"`
	SucceededRecords int                `json:"succeeded_records" yaml:"succeeded_records"`
	FailedRecords    int                `json:"failed_records" yaml:"failed_records"`
	Retries          int                `json:"retries" yaml:"retries"`
	Elapsed          time.Duration      `json:"elapsed" yaml:"elapsed"`

	// Throughput is succeeded records per second of wall-clock time.
	Throughput float64 `json:"throughput" yaml:"throughput"`

	// PeakBatchRate is the highest per-batch records/second observed.
	PeakBatchRate float64 `json:"peak_batch_rate" yaml:"peak_batch_rate"`
}

// QueryClass tags a benchmark query with its difficulty class.
type QueryClass string

const (
	ClassBasicKeyword  QueryClass = "basic-keyword"
	ClassSemantic      QueryClass = "semantic"
	ClassTechnicalTerm QueryClass = "technical-term"
	ClassCitationBased QueryClass = "citation-based"
	ClassCrossDomain   QueryClass = "cross-domain"
)

// QueryProbe is one benchmark query and its measured outcome.
type QueryProbe struct {
	Query    string        `json:"query" yaml:"query"`
	Class    QueryClass    `json:"class" yaml:"class"`
	Latency  time.Duration `json:"latency" yaml:"latency"`
	Results  int           `json:"results" yaml:"results"`
	TopScore float64       `json:"top_score" yaml:"top_score"`
	OK       bool          `json:"ok" yaml:"ok"`
	Err      string        `json:"err,omitempty" yaml:"err,omitempty"`
}

// BenchReport aggregates search benchmark probes. Latency statistics
// cover succeeded probes only; SuccessRate counts all probes.
type BenchReport struct {
	Probes      []QueryProbe  `json:"probes" yaml:"probes"`
	SuccessRate float64       `json:"success_rate" yaml:"success_rate"`
	MinLatency  time.Duration `json:"min_latency" yaml:"min_latency"`
	MaxLatency  time.Duration `json:"max_latency" yaml:"max_latency"`
	MeanLatency time.Duration `json:"mean_latency" yaml:"mean_latency"`
}

// AgentProbe is one agent question and its scored response.
type AgentProbe struct {
	Question string        `json:"question" yaml:"question"`
	Domain   string        `json:"domain" yaml:"domain"`
	Response string        `json:"response,omitempty" yaml:"response,omitempty"`
	Latency  time.Duration `json:"latency" yaml:"latency"`
	Score    float64       `json:"score" yaml:"score"`
	OK       bool          `json:"ok" yaml:"ok"`
	Err      string        `json:"err,omitempty" yaml:"err,omitempty"`
}

// ProbeReport aggregates agent probes. Errored probes score zero and
// remain in the mean.
type ProbeReport struct {
	Probes    []AgentProbe `json:"probes" yaml:"probes"`
	MeanScore float64      `json:"mean_score" yaml:"mean_score"`
}

// FindingKind classifies an integrity defect.
type FindingKind string

const (
	FindingMissingField     FindingKind = "missing-field"
	FindingDuplicateTitle   FindingKind = "duplicate-title"
	FindingInvalidCitation  FindingKind = "invalid-citation"
	FindingDistributionSkew FindingKind = "distribution-skew"
)

// IntegrityFinding is one defect class measured over the resident corpus.
type IntegrityFinding struct {
	Kind FindingKind `json:"kind" yaml:"kind"`

	// Rate is the affected fraction of the corpus, in [0,1].
	Rate float64 `json:"rate" yaml:"rate"`

	// Affected is the number of records exhibiting the defect.
	Affected int `json:"affected" yaml:"affected"`

	// Penalty is the score deduction per percentage point of Rate.
	Penalty float64 `json:"penalty" yaml:"penalty"`
}

// AuditReport holds integrity findings and diagnostic distributions.
type AuditReport struct {
	Total             int                `json:"total" yaml:"total"`
	Findings          []IntegrityFinding `json:"findings" yaml:"findings"`
	CategoryHistogram map[string]int     `json:"category_histogram" yaml:"category_histogram"`
	FieldHistogram    map[string]int     `json:"field_histogram" yaml:"field_histogram"`
	Score             float64            `json:"score" yaml:"score"`
}

// Verdict is the discrete health tier derived from the overall score.
type Verdict string

const (
	VerdictHealthy  Verdict = "healthy"
	VerdictIssues   Verdict = "issues"
	VerdictCritical Verdict = "critical"
)

// Scores holds the four component sub-scores on the 0-100 scale.
type Scores struct {
	Operations float64 `json:"operations" yaml:"operations"`
	Search     float64 `json:"search" yaml:"search"`
	AI         float64 `json:"ai" yaml:"ai"`
	Integrity  float64 `json:"integrity" yaml:"integrity"`
}

// ScoreCard fuses the four sub-scores into an overall score and verdict.
type ScoreCard struct {
	Sub       Scores       `json:"sub_scores" yaml:"sub_scores"`
	Weights   ScoreWeights `json:"weights" yaml:"weights"`
	Overall   float64      `json:"overall" yaml:"overall"`
	Verdict   Verdict      `json:"verdict" yaml:"verdict"`
	ExitCode  int          `json:"exit_code" yaml:"exit_code"`
	Timestamp time.Time    `json:"timestamp" yaml:"timestamp"`
}
