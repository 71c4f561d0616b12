// Package main provides the entry point for the profile optimizer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/profile-optimizer/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "profile_agent",
	Short: "Profile section splitter and optimizer",
	Long:  "Profile agent splits profile documents into sections, and produces AI-optimized rewrites of each section with structured suggestions.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Setup(rootVerbose)
	},
}

var rootVerbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed progress output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
