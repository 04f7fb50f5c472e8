// Package main provides the aquascore CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "aquascore",
		Short: "Compliance scoring for water suppliers",
		Long: `AquaScore aggregates an organization's regulatory records, scores them
across six compliance categories, and reports a weighted 0-100 score with
recommendations.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newHistoryCmd(),
		newOrgsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
