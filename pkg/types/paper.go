// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PaperRecord is a synthetic research paper as stored in the knowledge base.
type PaperRecord struct {
	// ID is a generator-assigned UUID, unique within a run.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in citation order. Never empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract, topically consistent with the title.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Category is an arXiv-style topical code (e.g. "cs.LG").
	Category string `json:"category" yaml:"category"`

	// ResearchField is the broad field the paper belongs to (e.g. "Machine Learning").
	ResearchField string `json:"research_field" yaml:"research_field"`

	// CitationCount is the number of citations. Never negative.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// Journal is the publication venue.
	Journal string `json:"journal" yaml:"journal"`

	// PaperType classifies the publication (e.g. "Conference Paper").
	PaperType string `json:"paper_type" yaml:"paper_type"`

	// ArxivID is a synthetic arXiv-format identifier (e.g. "2301.4821").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// PublishedDate is the publication date, within the configured window.
	PublishedDate time.Time `json:"published_date" yaml:"published_date"`
}

// HasMissingField reports whether any required field is empty or absent.
func (p PaperRecord) HasMissingField() bool {
	return p.Title == "" || len(p.Authors) == 0 || p.Abstract == "" ||
		p.Category == "" || p.ResearchField == ""
}

// GeneratedBatch is an ordered chunk of records submitted to storage in
// one bulk-insert call. Index exists for error reporting only.
type GeneratedBatch struct {
	Index   int
	Records []PaperRecord
}

// SearchHit pairs a resident record with its relevance score for a query.
type SearchHit struct {
	Record PaperRecord `json:"record" yaml:"record"`
	Score  float64     `json:"score" yaml:"score"`
}
