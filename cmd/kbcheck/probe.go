// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/kbcheck/internal/probe"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Probe the AI agent with research questions",
	Long: `Probe asks the configured agent a bank of research questions and
scores each answer on length, expected-term coverage, and latency.`,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg := harnessConfig(cmd)
	if f, _ := cmd.Flags().GetString("questions-file"); f != "" {
		cfg.Probe.QuestionsFile = f
	}

	_, agent, closeFn, err := collaborators(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	p, err := probe.NewProber(agent, cfg.Probe)
	if err != nil {
		return err
	}

	n, _ := cmd.Flags().GetInt("ai-probes")
	report := p.Run(cmd.Context(), n, os.Stdout)

	fmt.Printf("\nQuestions: %d, mean quality %.1f/100\n", len(report.Probes), report.MeanScore)
	return nil
}

func init() {
	probeCmd.Flags().Int("ai-probes", 10, "number of agent questions")
	probeCmd.Flags().String("questions-file", "", "YAML file of agent questions")

	rootCmd.AddCommand(probeCmd)
}
