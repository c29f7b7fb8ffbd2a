package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/fashion-assistant/internal/llm"
	"github.com/jonathan/fashion-assistant/internal/observability"
	"github.com/jonathan/fashion-assistant/internal/tagging"
	"github.com/jonathan/fashion-assistant/internal/vision"
)

var tagVerbose bool

var tagCmd = &cobra.Command{
	Use:   "tag <image>...",
	Short: "Tag clothing images without the server",
	Long:  `Run the tiered auto-tagging pipeline on local image files and print the resulting tag records as JSON.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTag,
}

func init() {
	tagCmd.Flags().BoolVarP(&tagVerbose, "verbose", "v", false, "Print a formatted summary to stderr")
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	images := make([][]byte, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		images = append(images, data)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := observability.NewLogger(os.Stderr)

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	caller := llm.NewCaller(client, nil, nil, log)
	service := tagging.NewService(
		caller,
		llm.DefaultConfig().FallbackOrder(),
		tagging.NewFallbackAdapter(vision.NewHeuristicClassifier()),
		log,
	)

	records := service.BatchAutoTag(ctx, images)

	if tagVerbose {
		observability.NewPrinter(os.Stderr).PrintTagBatch(records)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
