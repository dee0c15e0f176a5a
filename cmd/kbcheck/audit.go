// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/kbcheck/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit knowledge base integrity",
	Long: `Audit scans the stored corpus and reports missing fields, duplicate
and near-duplicate titles, implausible citation counts, and field
distribution skew, fused into a 0-100 integrity score.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg := harnessConfig(cmd)
	if n, _ := cmd.Flags().GetInt("sample"); n > 0 {
		cfg.Audit.SampleSize = n
	}

	store, _, closeFn, err := collaborators(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := audit.NewAuditor(store, cfg.Audit).Run(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("\nIntegrity: %.1f/100 over %d records\n", report.Score, report.Total)
	printFindings(report)
	return nil
}

func init() {
	auditCmd.Flags().Int("sample", 0, "audit a random sample of this size (0 = full scan)")

	rootCmd.AddCommand(auditCmd)
}
