// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/kbcheck/internal/generate"
	"github.com/meshintel/kbcheck/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Preview synthetic paper records without ingesting them",
	Long: `Generate produces synthetic research papers and prints them as YAML,
followed by distribution statistics over the batch. Nothing is written
to the knowledge base. Use --seed for a reproducible preview.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")
	preview, _ := cmd.Flags().GetInt("preview")
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	gen := generate.NewGenerator(types.GeneratorConfig{Seed: seed})
	records := gen.Batch(count)

	if preview > len(records) {
		preview = len(records)
	}
	if preview > 0 {
		data, err := yaml.Marshal(records[:preview])
		if err != nil {
			return fmt.Errorf("encoding records: %w", err)
		}
		os.Stdout.Write(data)
	}

	printDistribution(records)
	return nil
}

func printDistribution(records []types.PaperRecord) {
	fields := make(map[string]int)
	var totalCitations int
	minYear, maxYear := 9999, 0
	for _, r := range records {
		fields[r.ResearchField]++
		totalCitations += r.CitationCount
		if y := r.PublishedDate.Year(); y < minYear {
			minYear = y
		}
		if y := r.PublishedDate.Year(); y > maxYear {
			maxYear = y
		}
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(fields))
	for name, count := range fields {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	fmt.Printf("\nGenerated %d records, published %d-%d, mean citations %.1f\n",
		len(records), minYear, maxYear, float64(totalCitations)/float64(len(records)))
	fmt.Println("Research fields:")
	for _, e := range entries {
		fmt.Printf("  %-30s %6d (%.1f%%)\n", e.name, e.count,
			float64(e.count)/float64(len(records))*100)
	}
}

func init() {
	generateCmd.Flags().Int("count", 100, "number of records to generate")
	generateCmd.Flags().Int("preview", 3, "number of records to print in full")
	generateCmd.Flags().Int64("seed", 0, "random seed (0 = non-reproducible)")

	rootCmd.AddCommand(generateCmd)
}
