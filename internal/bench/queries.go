// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bench

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/kbcheck/pkg/types"
)

// QueryTemplate is one entry in the benchmark query corpus.
type QueryTemplate struct {
	Query string           `yaml:"query"`
	Class types.QueryClass `yaml:"class"`
}

type queryFile struct {
	Version int             `yaml:"version"`
	Queries []QueryTemplate `yaml:"queries"`
}

// DefaultQueries is the built-in corpus, five query classes over the
// research-paper domain.
var DefaultQueries = []QueryTemplate{
	// Basic keyword queries.
	{"Find papers about machine learning", types.ClassBasicKeyword},
	{"Show me research on neural networks", types.ClassBasicKeyword},
	{"What papers discuss computer vision?", types.ClassBasicKeyword},
	{"Find papers by authors with last name Smith", types.ClassBasicKeyword},
	{"Show papers published in 2023", types.ClassBasicKeyword},
	{"Find papers in cs.AI category", types.ClassBasicKeyword},

	// Complex semantic queries.
	{"What are the latest developments in deep learning?", types.ClassSemantic},
	{"Find papers about natural language processing applications", types.ClassSemantic},
	{"Show me research on autonomous vehicles and robotics", types.ClassSemantic},
	{"What papers discuss medical AI and healthcare?", types.ClassSemantic},
	{"Find papers about cybersecurity and machine learning", types.ClassSemantic},
	{"Show research on climate change and data science", types.ClassSemantic},

	// Specific technical queries.
	{"Find papers about transformer architectures", types.ClassTechnicalTerm},
	{"Show me research on reinforcement learning algorithms", types.ClassTechnicalTerm},
	{"What papers discuss graph neural networks?", types.ClassTechnicalTerm},
	{"Find papers about computer vision in healthcare", types.ClassTechnicalTerm},
	{"Show me research on federated learning", types.ClassTechnicalTerm},
	{"Find papers about adversarial machine learning", types.ClassTechnicalTerm},

	// Citation and impact queries.
	{"Show me the most cited papers", types.ClassCitationBased},
	{"Find recent papers with high impact", types.ClassCitationBased},
	{"What are the trending research topics?", types.ClassCitationBased},
	{"Show papers with more than 100 citations", types.ClassCitationBased},

	// Cross-domain queries.
	{"Find interdisciplinary papers combining AI and biology", types.ClassCrossDomain},
	{"Show research connecting machine learning and physics", types.ClassCrossDomain},
	{"Find papers about AI applications in finance", types.ClassCrossDomain},
	{"Show me research on quantum computing and optimization", types.ClassCrossDomain},
}

// LoadQueries reads a query corpus from a YAML file. An empty path
// returns the built-in corpus.
func LoadQueries(path string) ([]QueryTemplate, error) {
	if path == "" {
		return DefaultQueries, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query corpus %s: %w", path, err)
	}

	var qf queryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query corpus %s: %w", path, err)
	}
	if len(qf.Queries) == 0 {
		return nil, fmt.Errorf("query corpus %s contains no queries", path)
	}
	return qf.Queries, nil
}
