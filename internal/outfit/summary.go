package outfit

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/fashion-assistant/internal/llm"
	"github.com/jonathan/fashion-assistant/internal/observability"
	"github.com/jonathan/fashion-assistant/internal/types"
)

// BMI bands used for the body-shape styling hint.
const (
	bmiUnderweight = 18.5
	bmiOverweight  = 24.0
)

// Summarizer produces the user-facing narrative for a bundle with one
// model call.
type Summarizer struct {
	caller *llm.Caller
	tier   llm.ModelTier
	log    *observability.Logger
}

// NewSummarizer creates a Summarizer calling the given tier.
func NewSummarizer(caller *llm.Caller, tier llm.ModelTier, log *observability.Logger) *Summarizer {
	return &Summarizer{caller: caller, tier: tier, log: log}
}

// Summarize builds one prompt covering every outfit and returns the model
// reply verbatim. A failed call degrades to an empty narrative rather than
// failing the recommendation.
func (s *Summarizer) Summarize(ctx context.Context, outfits []types.OutfitCandidate, weather types.WeatherSnapshot,
	occasion types.Occasion, profile *types.UserProfile) string {

	if len(outfits) == 0 {
		return ""
	}

	prompt := buildSummaryPrompt(outfits, weather, occasion, profile)
	text, err := s.caller.Call(ctx, s.tier, llm.Request{Prompt: prompt})
	if err != nil {
		s.log.Eventf("summary", "narrative call failed, returning empty narrative: %v", err)
		return ""
	}
	return text
}

func buildSummaryPrompt(outfits []types.OutfitCandidate, weather types.WeatherSnapshot,
	occasion types.Occasion, profile *types.UserProfile) string {

	var sb strings.Builder

	sb.WriteString("You are a professional fashion advisor. Write a warm, concise narrative explaining the outfit recommendations below.\n\n")
	fmt.Fprintf(&sb, "Weather: %s, %.1f°C (feels like %.1f°C), %s\n",
		weather.City, weather.Temperature, weather.FeelsLike, weather.Description)
	fmt.Fprintf(&sb, "Occasion: %s\n\n", occasion)

	for i, outfit := range outfits {
		fmt.Fprintf(&sb, "Outfit %d:\n", i+1)
		for _, item := range outfit.Items {
			fmt.Fprintf(&sb, "- %s (%s, %s)\n", item.Name, item.Color, item.Category)
		}
		sb.WriteString("\n")
	}

	if hint := bodyShapeHint(profile); hint != "" {
		fmt.Fprintf(&sb, "Styling note: %s\n\n", hint)
	}

	sb.WriteString("Explain why each outfit suits the weather and occasion, and give one overall styling tip. Keep it friendly and under 200 words.\n")
	return sb.String()
}

// bodyShapeHint derives a styling suggestion from a BMI-style banding of
// height and weight. Missing measurements yield no hint.
func bodyShapeHint(profile *types.UserProfile) string {
	if profile == nil || profile.HeightCM <= 0 || profile.WeightKG <= 0 {
		return ""
	}

	heightM := profile.HeightCM / 100
	bmi := profile.WeightKG / (heightM * heightM)

	switch {
	case bmi < bmiUnderweight:
		return "the user has a slim build; suggest layering, volume, and textured fabrics"
	case bmi > bmiOverweight:
		return "suggest vertical lines and darker tones for a lengthening silhouette"
	default:
		return ""
	}
}
