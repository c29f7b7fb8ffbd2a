package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/fashion-assistant/internal/config"
	"github.com/jonathan/fashion-assistant/internal/intent"
	"github.com/jonathan/fashion-assistant/internal/llm"
	"github.com/jonathan/fashion-assistant/internal/observability"
	"github.com/jonathan/fashion-assistant/internal/outfit"
	"github.com/jonathan/fashion-assistant/internal/selection"
	"github.com/jonathan/fashion-assistant/internal/server"
	"github.com/jonathan/fashion-assistant/internal/store"
	"github.com/jonathan/fashion-assistant/internal/tagging"
	"github.com/jonathan/fashion-assistant/internal/vision"
	"github.com/jonathan/fashion-assistant/internal/weather"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes wardrobe upload, auto-tagging, and outfit recommendation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := observability.NewLogger(os.Stderr)

	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	pacer := llm.NewPacer(cfg.ModelCallInterval, nil)
	caller := llm.NewCaller(client, pacer, nil, log)

	tagger := tagging.NewService(
		caller,
		llm.DefaultConfig().FallbackOrder(),
		tagging.NewFallbackAdapter(vision.NewHeuristicClassifier()),
		log,
	)

	normalizer := intent.NewNormalizer(caller, llm.TierSecondary, log)
	assembler := outfit.NewAssembler(selection.NewGreedyEngine(), log)
	summarizer := outfit.NewSummarizer(caller, llm.TierSecondary, log)
	recommender := outfit.NewService(normalizer, assembler, summarizer, log)

	srv, err := server.New(server.Deps{
		Config:      cfg,
		Store:       db,
		Weather:     weather.NewProvider(cfg.WeatherAPIKey),
		Tagger:      tagger,
		Recommender: recommender,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cfg.Port)
}
