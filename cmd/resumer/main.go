// Package main provides the resumer entry point: an HTTP API server plus CLI
// commands for one-off tailoring and batch runs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumer",
	Short: "Resume tailoring service",
	Long:  "Resumer tailors a template resume to job descriptions with LLM generation and deterministic post-processing, rendering PDF resumes, cover letters, and application question answers.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
