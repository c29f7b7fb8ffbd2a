package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/fashion-assistant/internal/intent"
	"github.com/jonathan/fashion-assistant/internal/llm"
	"github.com/jonathan/fashion-assistant/internal/observability"
	"github.com/jonathan/fashion-assistant/internal/outfit"
	"github.com/jonathan/fashion-assistant/internal/selection"
	"github.com/jonathan/fashion-assistant/internal/types"
	"github.com/jonathan/fashion-assistant/internal/weather"
)

var (
	recommendWardrobe string
	recommendProfile  string
	recommendCity     string
	recommendStyle    string
	recommendOccasion string
	recommendLocked   []int64
	recommendVerbose  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate outfit recommendations without the server",
	Long:  `Run the recommendation flow against a wardrobe JSON file and print the resulting bundle as JSON.`,
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendWardrobe, "wardrobe", "", "Path to a JSON file holding the wardrobe items (required)")
	recommendCmd.Flags().StringVar(&recommendProfile, "profile", "", "Path to a JSON file holding the user profile")
	recommendCmd.Flags().StringVar(&recommendCity, "city", "Taipei", "City for the weather lookup")
	recommendCmd.Flags().StringVar(&recommendStyle, "style", "", "Requested style keyword")
	recommendCmd.Flags().StringVar(&recommendOccasion, "occasion", "a day out", "Freeform occasion text")
	recommendCmd.Flags().Int64SliceVar(&recommendLocked, "lock", nil, "Item ids that must appear in every outfit")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print a formatted summary to stderr")
	_ = recommendCmd.MarkFlagRequired("wardrobe")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	weatherKey := os.Getenv("OPENWEATHER_API_KEY")
	if weatherKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY environment variable is required")
	}

	var wardrobe []types.ClothingItem
	if err := readJSONFile(recommendWardrobe, &wardrobe); err != nil {
		return fmt.Errorf("failed to load wardrobe: %w", err)
	}

	var profile *types.UserProfile
	if recommendProfile != "" {
		profile = &types.UserProfile{}
		if err := readJSONFile(recommendProfile, profile); err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := observability.NewLogger(os.Stderr)

	snapshot, err := weather.NewProvider(weatherKey).Get(ctx, recommendCity)
	if err != nil {
		return fmt.Errorf("failed to fetch weather: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	caller := llm.NewCaller(client, nil, nil, log)
	service := outfit.NewService(
		intent.NewNormalizer(caller, llm.TierSecondary, log),
		outfit.NewAssembler(selection.NewGreedyEngine(), log),
		outfit.NewSummarizer(caller, llm.TierSecondary, log),
		log,
	)

	bundle := service.Generate(ctx, outfit.Request{
		Wardrobe:      wardrobe,
		Weather:       snapshot,
		Style:         recommendStyle,
		Occasion:      recommendOccasion,
		Profile:       profile,
		LockedItemIDs: recommendLocked,
	})
	if bundle == nil {
		return fmt.Errorf("no recommendation could be generated; the wardrobe may be empty")
	}

	if recommendVerbose {
		observability.NewPrinter(os.Stderr).PrintBundle(bundle)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(bundle)
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
