// Package main provides the entry point for the resume journal CLI and API
// server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_journal",
	Short: "Work log journal with skill tracking and resume generation",
	Long:  "Resume Journal captures day-to-day work logs, tracks the skills they demonstrate, and generates resumes tailored to job descriptions from that evidence.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
