// Package main provides the entry point for the gitply CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitply/cmd/gitply/commands"
	"github.com/Sumatoshi-tech/gitply/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gitply",
		Short: "gitply - per-contributor commit statistics from git history",
		Long: `gitply extracts per-contributor statistics from git commit
history and buckets them into calendar periods.

Commands:
  history   Weekly contribution history with gap detection
  weekly    Daily summary of the past week
  year      Rolling-year commit summary`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewWeeklyCommand())
	rootCmd.AddCommand(commands.NewYearCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "gitply %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
