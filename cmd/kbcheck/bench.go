// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/kbcheck/internal/bench"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark semantic search against the knowledge base",
	Long: `Bench runs relevance queries against the configured knowledge base
and reports per-class success rates and latency statistics. The corpus
is read as-is; nothing is generated or ingested.`,
	RunE: runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := harnessConfig(cmd)
	if f, _ := cmd.Flags().GetString("queries-file"); f != "" {
		cfg.Bench.QueriesFile = f
	}

	store, _, closeFn, err := collaborators(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	b, err := bench.NewBenchmark(store, cfg.Bench)
	if err != nil {
		return err
	}

	n, _ := cmd.Flags().GetInt("queries")
	report := b.Run(cmd.Context(), n, os.Stdout)

	fmt.Printf("\nQueries: %d, success rate %.0f%%\n", len(report.Probes), report.SuccessRate*100)
	if report.MeanLatency > 0 {
		fmt.Printf("Latency min/mean/max: %v/%v/%v\n",
			report.MinLatency, report.MeanLatency, report.MaxLatency)
	}
	return nil
}

func init() {
	benchCmd.Flags().Int("queries", 20, "number of benchmark queries")
	benchCmd.Flags().String("queries-file", "", "YAML file of query templates")

	rootCmd.AddCommand(benchCmd)
}
