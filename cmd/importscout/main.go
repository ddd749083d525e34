// Package main provides the entry point for the importscout CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/importscout/importscout/cmd/importscout/commands"
	"github.com/importscout/importscout/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "importscout",
		Short: "Importscout - source import extraction tool",
		Long: `Importscout scans source trees and extracts normalized import records.

Commands:
  scan       Extract imports from files under a path
  languages  List supported languages`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(commands.NewLanguagesCommand())
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
			fmt.Fprintf(os.Stdout, "importscout %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
