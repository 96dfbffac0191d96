// Package main provides the ResuMix entry point: the HTTP API server and
// the CLI client that talks to it.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumix",
	Short: "ResuMix resume tailoring service and client",
	Long:  "ResuMix stores a scored resume document and generates one-page PDF resumes tailored to a job posting.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
