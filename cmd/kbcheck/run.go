// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/kbcheck/internal/harness"
	"github.com/meshintel/kbcheck/pkg/types"
)

// exitCode carries the verdict out of the run command; main passes it
// to os.Exit after cobra unwinds.
var exitCode int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full stress-test and verification sequence",
	Long: `Run generates synthetic research papers, ingests them into the
knowledge base in profiled batches, benchmarks semantic search, probes
the AI agent, audits corpus integrity, and prints a fused scorecard.

The process exit code reports the verdict: 0 healthy (overall >= 70),
1 issues (50-70), 2 critical (< 50). Interrupting a run stops new
collaborator calls and still produces a partial scorecard.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := harnessConfig(cmd)
	cfg.Records, _ = cmd.Flags().GetInt("records")
	cfg.QueryProbes, _ = cmd.Flags().GetInt("queries")
	cfg.AIProbes, _ = cmd.Flags().GetInt("ai-probes")
	cfg.TestOnly, _ = cmd.Flags().GetBool("test-only")
	cfg.Generator.Seed, _ = cmd.Flags().GetInt64("seed")
	if c, _ := cmd.Flags().GetInt("concurrency"); c > 0 {
		cfg.Ingest.Concurrency = c
		cfg.Bench.Concurrency = c
		cfg.Probe.Concurrency = c
	}
	if b, _ := cmd.Flags().GetInt("batch-size"); b > 0 {
		cfg.Ingest.BatchSize = b
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !cfg.TestOnly && !yes {
		numBatches := (cfg.Records + cfg.Ingest.BatchSize - 1) / cfg.Ingest.BatchSize
		fmt.Printf("This will generate and ingest %d synthetic papers (%d batches of %d).\n",
			cfg.Records, numBatches, cfg.Ingest.BatchSize)
		if !confirm("Proceed?") {
			fmt.Println("Run cancelled.")
			return nil
		}
	}

	store, agent, closeFn, err := collaborators(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	// Interrupt stops issuing new collaborator calls; in-flight calls
	// finish and a partial scorecard is still produced.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := harness.New(store, agent, cfg).Run(ctx, os.Stdout)
	if err != nil {
		return err
	}

	printSummary(result)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := writeResult(out, result); err != nil {
			return err
		}
		fmt.Printf("Scorecard written to %s\n", out)
	}

	exitCode = result.Card.ExitCode
	return nil
}

// confirm reads a y/N answer from stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// printSummary renders the run result as plain text.
func printSummary(result harness.RunResult) {
	card := result.Card

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Overall score: %.1f/100  verdict: %s\n", card.Overall, card.Verdict)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("%-12s %7s %8s\n", "Component", "Score", "Weight")
	fmt.Printf("%-12s %7.1f %8.2f\n", "operations", card.Sub.Operations, card.Weights.Operations)
	fmt.Printf("%-12s %7.1f %8.2f\n", "search", card.Sub.Search, card.Weights.Search)
	fmt.Printf("%-12s %7.1f %8.2f\n", "ai", card.Sub.AI, card.Weights.AI)
	fmt.Printf("%-12s %7.1f %8.2f\n", "integrity", card.Sub.Integrity, card.Weights.Integrity)

	ing := result.Ingestion
	if ing.TotalBatches > 0 {
		fmt.Printf("\nIngestion: %d/%d batches ok, %d retries, %.1f records/sec (peak %.1f)\n",
			ing.SucceededBatches, ing.TotalBatches, ing.Retries, ing.Throughput, ing.PeakBatchRate)
	}
	if len(result.Bench.Probes) > 0 {
		fmt.Printf("Search: %.0f%% success, latency min/mean/max %v/%v/%v\n",
			result.Bench.SuccessRate*100, result.Bench.MinLatency, result.Bench.MeanLatency, result.Bench.MaxLatency)
	}
	if len(result.Probe.Probes) > 0 {
		fmt.Printf("Agent: mean quality %.1f/100 over %d questions\n",
			result.Probe.MeanScore, len(result.Probe.Probes))
	}
	if result.Audit.Total > 0 {
		fmt.Printf("Integrity: %.1f/100 over %d records\n", result.Audit.Score, result.Audit.Total)
		printFindings(result.Audit)
	}
}

func printFindings(report types.AuditReport) {
	if report.Total == 0 {
		return
	}
	for _, f := range report.Findings {
		if f.Affected == 0 {
			continue
		}
		fmt.Printf("  %-18s %5d records (%.2f%%)\n", f.Kind, f.Affected, f.Rate*100)
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(report.FieldHistogram))
	for name, count := range report.FieldHistogram {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })
	if len(entries) > 5 {
		entries = entries[:5]
	}
	fmt.Println("  Top research fields:")
	for _, e := range entries {
		fmt.Printf("    %-30s %6d (%.1f%%)\n", e.name, e.count,
			float64(e.count)/float64(report.Total)*100)
	}
}

func writeResult(path string, result harness.RunResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding scorecard: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scorecard: %w", err)
	}
	return nil
}

func init() {
	runCmd.Flags().Int("records", 1000, "number of synthetic papers to generate")
	runCmd.Flags().Int("batch-size", 100, "records per bulk insert")
	runCmd.Flags().Bool("test-only", false, "skip generation and ingestion, run tests only")
	runCmd.Flags().Int("queries", 20, "number of benchmark queries")
	runCmd.Flags().Int("ai-probes", 10, "number of agent questions")
	runCmd.Flags().Int64("seed", 0, "random seed (0 = non-reproducible)")
	runCmd.Flags().Int("concurrency", 1, "batches/queries in flight")
	runCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	runCmd.Flags().String("out", "", "write the full result as YAML to this file")

	rootCmd.AddCommand(runCmd)
}
