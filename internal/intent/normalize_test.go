package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/fashion-assistant/internal/llm"
	"github.com/jonathan/fashion-assistant/internal/types"
)

// fixedClient answers every call with the same reply.
type fixedClient struct {
	text string
	err  error
}

func (c *fixedClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return c.text, c.err
}

func (c *fixedClient) GenerateVision(_ context.Context, _ string, _ [][]byte, _ llm.ModelTier) (string, error) {
	return c.text, c.err
}

func (c *fixedClient) GetModel(_ llm.ModelTier) string { return "fake-model" }

func (c *fixedClient) Close() error { return nil }

func newTestNormalizer(client llm.Client) *Normalizer {
	return NewNormalizer(llm.NewCaller(client, nil, nil, nil), llm.TierSecondary, nil)
}

func TestNormalizeParsesModelReply(t *testing.T) {
	client := &fixedClient{text: `{
		"occasion": "work",
		"needs_outer": false,
		"vibe_text": "sharp and focused",
		"parsed_style": "business"
	}`}
	n := newTestNormalizer(client)

	decision := n.Normalize(context.Background(), "client meeting", "business",
		types.WeatherSnapshot{Temperature: 25}, nil)

	assert.Equal(t, types.OccasionWork, decision.Occasion)
	assert.False(t, decision.NeedsOuter)
	assert.Equal(t, "sharp and focused", decision.VibeText)
	assert.Equal(t, "business", decision.ParsedStyle)
}

func TestNormalizeDefaultsOnCallFailure(t *testing.T) {
	n := newTestNormalizer(&fixedClient{err: errors.New("model down")})

	decision := n.Normalize(context.Background(), "date night", "",
		types.WeatherSnapshot{Temperature: 18}, nil)

	assert.Equal(t, types.OccasionDaily, decision.Occasion)
	assert.True(t, decision.NeedsOuter, "cool default weather recommends outerwear")
	assert.Equal(t, "daily", decision.ParsedStyle)
	assert.NotEmpty(t, decision.VibeText)
}

func TestNormalizeDefaultSkipsOuterWhenWarm(t *testing.T) {
	n := newTestNormalizer(&fixedClient{err: errors.New("model down")})

	decision := n.Normalize(context.Background(), "", "street",
		types.WeatherSnapshot{Temperature: 28}, nil)

	assert.False(t, decision.NeedsOuter)
	assert.Equal(t, "street", decision.ParsedStyle, "requested style survives the default path")
}

func TestNormalizeDefaultsOnUnusableReply(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not JSON", "happy to help with outfits!"},
		{"invalid occasion", `{"occasion": "party", "needs_outer": true}`},
		{"missing needs_outer", `{"occasion": "work", "vibe_text": "x"}`},
		{"needs_outer wrong type", `{"occasion": "work", "needs_outer": "yes"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNormalizer(&fixedClient{text: tt.text})

			decision := n.Normalize(context.Background(), "x", "",
				types.WeatherSnapshot{Temperature: 10}, nil)

			assert.Equal(t, types.OccasionDaily, decision.Occasion)
			assert.True(t, decision.NeedsOuter)
		})
	}
}

func TestNormalizeFillsMissingParsedStyle(t *testing.T) {
	client := &fixedClient{text: `{"occasion": "sport", "needs_outer": false}`}
	n := newTestNormalizer(client)

	decision := n.Normalize(context.Background(), "gym", "sport",
		types.WeatherSnapshot{Temperature: 25}, nil)

	assert.Equal(t, "sport", decision.ParsedStyle)
}

func TestNormalizeTruncatesLongVibe(t *testing.T) {
	long := strings.Repeat("vibes ", 20)
	client := &fixedClient{text: `{"occasion": "daily", "needs_outer": false, "vibe_text": "` + long + `"}`}
	n := newTestNormalizer(client)

	decision := n.Normalize(context.Background(), "", "",
		types.WeatherSnapshot{Temperature: 25}, nil)

	assert.LessOrEqual(t, len([]rune(decision.VibeText)), 30)
}

func TestBuildIntentPromptIncludesProfile(t *testing.T) {
	profile := &types.UserProfile{
		Gender:            "female",
		HeightCM:          165,
		ThermalPreference: types.ThermalColdSensitive,
		Dislikes:          "yellow, crop tops",
	}

	prompt := buildIntentPrompt("brunch", "casual",
		types.WeatherSnapshot{City: "Taipei", Temperature: 21.5, FeelsLike: 23}, profile)

	assert.Contains(t, prompt, "Taipei")
	assert.Contains(t, prompt, "brunch")
	assert.Contains(t, prompt, "female")
	assert.Contains(t, prompt, "cold_sensitive")
	assert.Contains(t, prompt, "yellow, crop tops")
}
