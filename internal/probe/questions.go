// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package probe

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Question is one entry in the agent question bank. ExpectedTerms are
// the domain terms an adequate answer should mention.
type Question struct {
	Text          string   `yaml:"text"`
	Domain        string   `yaml:"domain"`
	ExpectedTerms []string `yaml:"expected_terms"`
}

type questionFile struct {
	Version   int        `yaml:"version"`
	Questions []Question `yaml:"questions"`
}

// DefaultQuestions is the built-in bank of research-domain questions:
// trend analysis, summarization, technical Q&A, and citation patterns.
var DefaultQuestions = []Question{
	{
		Text:          "What are the current trends in machine learning research?",
		Domain:        "trend-analysis",
		ExpectedTerms: []string{"learning", "research", "model", "trend"},
	},
	{
		Text:          "Can you summarize recent developments in computer vision?",
		Domain:        "summarization",
		ExpectedTerms: []string{"vision", "image", "detection", "recognition"},
	},
	{
		Text:          "What are the most influential papers in natural language processing?",
		Domain:        "citation-patterns",
		ExpectedTerms: []string{"language", "papers", "citation", "influential"},
	},
	{
		Text:          "How has AI research evolved in the healthcare domain?",
		Domain:        "trend-analysis",
		ExpectedTerms: []string{"healthcare", "medical", "research", "ai"},
	},
	{
		Text:          "What are the key challenges in deep learning today?",
		Domain:        "technical-qa",
		ExpectedTerms: []string{"learning", "training", "data", "challenge"},
	},
	{
		Text:          "Can you identify emerging research areas in artificial intelligence?",
		Domain:        "trend-analysis",
		ExpectedTerms: []string{"research", "emerging", "intelligence", "field"},
	},
	{
		Text:          "What papers show promising results in reinforcement learning?",
		Domain:        "technical-qa",
		ExpectedTerms: []string{"reinforcement", "learning", "papers", "results"},
	},
	{
		Text:          "How do citation patterns reflect research impact?",
		Domain:        "citation-patterns",
		ExpectedTerms: []string{"citation", "impact", "papers", "research"},
	},
	{
		Text:          "What interdisciplinary research is happening in AI?",
		Domain:        "summarization",
		ExpectedTerms: []string{"interdisciplinary", "research", "field", "ai"},
	},
	{
		Text:          "What are the most cited papers in the last two years?",
		Domain:        "citation-patterns",
		ExpectedTerms: []string{"cited", "papers", "recent", "citation"},
	},
}

// LoadQuestions reads a question bank from a YAML file. An empty path
// returns the built-in bank.
func LoadQuestions(path string) ([]Question, error) {
	if path == "" {
		return DefaultQuestions, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question bank %s: %w", path, err)
	}

	var qf questionFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing question bank %s: %w", path, err)
	}
	if len(qf.Questions) == 0 {
		return nil, fmt.Errorf("question bank %s contains no questions", path)
	}
	return qf.Questions, nil
}
