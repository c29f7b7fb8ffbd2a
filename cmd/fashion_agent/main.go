// Package main provides the entry point for the fashion assistant HTTP API
// server and its companion CLI commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fashion_agent",
	Short: "AI fashion assistant server",
	Long:  "Fashion assistant tags wardrobe photos with a tiered vision model pipeline and assembles weather-aware outfit recommendations via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
