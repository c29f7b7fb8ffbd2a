package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over the generative model provider.
type Client interface {
	// GenerateContent generates text from a text-only prompt on the given tier.
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateVision generates text from a prompt plus attached JPEG images.
	GenerateVision(ctx context.Context, prompt string, images [][]byte, tier ModelTier) (string, error)
	// GetModel returns the underlying provider model name for a tier.
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini-backed client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// GenerateContent generates text content on the given tier.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, tier, genai.Text(prompt))
}

// GenerateVision generates text content from a prompt and image attachments.
func (c *GeminiClient) GenerateVision(ctx context.Context, prompt string, images [][]byte, tier ModelTier) (string, error) {
	parts := make([]genai.Part, 0, len(images)+1)
	parts = append(parts, genai.Text(prompt))
	for _, img := range images {
		parts = append(parts, genai.ImageData("jpeg", img))
	}
	return c.generate(ctx, tier, parts...)
}

func (c *GeminiClient) generate(ctx context.Context, tier ModelTier, parts ...genai.Part) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return ExtractText(resp), nil
}

// GetModel returns the model name for a tier.
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ExtractText pulls the usable text out of a Gemini response. Blocked or
// empty candidates are tolerated: the first candidate carrying text parts
// wins, and a response with no usable text yields the empty string rather
// than an error.
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		var sb []byte
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb = append(sb, text...)
			}
		}
		if len(sb) > 0 {
			return string(sb)
		}
	}
	return ""
}
