// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kbcheck CLI: a stress-test
// and quality-verification harness for the research-paper knowledge
// base and its AI agent.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/kbcheck/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, else the named secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the kbcheck CLI.
var rootCmd = &cobra.Command{
	Use:   "kbcheck",
	Short: "Stress-test and verify the research-paper knowledge base",
	Long: `kbcheck synthesizes realistic research-paper corpora, drives bulk
ingestion while profiling throughput, benchmarks semantic search,
probes the AI research agent's response quality, audits the resident
corpus for data-quality defects, and fuses everything into a single
pass/fail verdict.

Exit codes from the run command report the verdict: 0 healthy,
1 issues detected, 2 critical.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kbcheck.yaml or ~/.config/kbcheck/config.yaml)")
	rootCmd.PersistentFlags().String("kb", "http", "knowledge-base backend: http or local")
	rootCmd.PersistentFlags().String("kb-url", "http://127.0.0.1:47334", "knowledge-base server URL (http backend)")
	rootCmd.PersistentFlags().String("agent-url", "", "agent endpoint URL (defaults to the knowledge-base URL)")
	rootCmd.PersistentFlags().String("data-dir", "data", "index directory (local backend)")
}

func initConfig() {
	// A local .env supplies credentials during development; missing
	// files are fine.
	godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kbcheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kbcheck"))
		}
	}

	viper.SetEnvPrefix("KBCHECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}
