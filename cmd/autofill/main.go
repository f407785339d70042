// Package main provides the entry point for the job application autofill CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Job application autofill agent",
	Long:  "Autofill detects the ATS platform behind a job application page, maps form fields to a structured resume, answers screening questions and optionally submits the application.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
