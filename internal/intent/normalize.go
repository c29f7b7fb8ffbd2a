// Package intent turns freeform occasion/style text into a structured
// decision that drives outfit assembly.
package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/fashion-assistant/internal/llm"
	"github.com/jonathan/fashion-assistant/internal/observability"
	"github.com/jonathan/fashion-assistant/internal/repair"
	"github.com/jonathan/fashion-assistant/internal/types"
)

// outerwearDefaultThreshold is the temperature below which the default
// decision recommends outerwear when the model gave no usable answer.
const outerwearDefaultThreshold = 22.0

// Normalizer resolves freeform occasion/style text into an IntentDecision
// with a single model call.
type Normalizer struct {
	caller *llm.Caller
	tier   llm.ModelTier
	log    *observability.Logger
}

// NewNormalizer creates a Normalizer calling the given tier.
func NewNormalizer(caller *llm.Caller, tier llm.ModelTier, log *observability.Logger) *Normalizer {
	return &Normalizer{caller: caller, tier: tier, log: log}
}

// Normalize issues one model call and parses the reply into a decision.
// If the call fails or the reply is not a well-formed decision object it
// substitutes a deterministic default; this path never fails.
func (n *Normalizer) Normalize(ctx context.Context, occasion, style string, weather types.WeatherSnapshot, profile *types.UserProfile) types.IntentDecision {
	prompt := buildIntentPrompt(occasion, style, weather, profile)

	text, err := n.caller.Call(ctx, n.tier, llm.Request{Prompt: prompt})
	if err != nil {
		n.log.Eventf("intent", "model call failed, using default decision: %v", err)
		return defaultDecision(style, weather)
	}

	decision, ok := parseDecision(text)
	if !ok {
		n.log.Eventf("intent", "reply was not a usable decision, using default")
		return defaultDecision(style, weather)
	}
	if decision.ParsedStyle == "" {
		decision.ParsedStyle = fallbackStyle(style)
	}
	return decision
}

// defaultDecision is the deterministic substitute used whenever the model
// gives no usable answer.
func defaultDecision(style string, weather types.WeatherSnapshot) types.IntentDecision {
	return types.IntentDecision{
		Occasion:    types.OccasionDaily,
		NeedsOuter:  weather.Temperature < outerwearDefaultThreshold,
		VibeText:    "a comfortable look for today",
		ParsedStyle: fallbackStyle(style),
	}
}

func fallbackStyle(style string) string {
	style = strings.TrimSpace(style)
	if style == "" {
		return "daily"
	}
	return style
}

// parseDecision maps a model reply onto an IntentDecision. A reply missing
// a valid occasion is rejected so the default path can take over.
func parseDecision(text string) (types.IntentDecision, bool) {
	value := repair.ParseJSON(text)
	obj, ok := value.(map[string]any)
	if !ok {
		return types.IntentDecision{}, false
	}

	occasion := types.Occasion(strings.ToLower(strings.TrimSpace(stringField(obj, "occasion"))))
	if !occasion.Valid() {
		return types.IntentDecision{}, false
	}

	needsOuter, ok := obj["needs_outer"].(bool)
	if !ok {
		return types.IntentDecision{}, false
	}

	return types.IntentDecision{
		Occasion:    occasion,
		NeedsOuter:  needsOuter,
		VibeText:    truncateVibe(stringField(obj, "vibe_text")),
		ParsedStyle: strings.TrimSpace(stringField(obj, "parsed_style")),
	}, true
}

// truncateVibe keeps the vibe line short enough for a card headline.
func truncateVibe(vibe string) string {
	vibe = strings.TrimSpace(vibe)
	runes := []rune(vibe)
	if len(runes) > 30 {
		return string(runes[:30])
	}
	return vibe
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

// buildIntentPrompt embeds the profile, weather, and request into a single
// extraction prompt.
func buildIntentPrompt(occasion, style string, weather types.WeatherSnapshot, profile *types.UserProfile) string {
	var sb strings.Builder

	sb.WriteString("You are a fashion assistant. Normalize the user's request into a structured decision.\n\n")
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{
  "occasion": "date|daily|sport|work|formal",
  "needs_outer": true,
  "vibe_text": "short vibe line, at most 30 characters",
  "parsed_style": "one style keyword"
}
`)
	sb.WriteString("\nContext:\n")
	fmt.Fprintf(&sb, "- City: %s, temperature %.1f°C (feels like %.1f°C), %s\n",
		weather.City, weather.Temperature, weather.FeelsLike, weather.Description)
	fmt.Fprintf(&sb, "- Requested occasion: %s\n", occasion)
	fmt.Fprintf(&sb, "- Requested style: %s\n", style)

	if profile != nil {
		if profile.Gender != "" {
			fmt.Fprintf(&sb, "- Gender: %s\n", profile.Gender)
		}
		if profile.HeightCM > 0 {
			fmt.Fprintf(&sb, "- Height: %.0f cm\n", profile.HeightCM)
		}
		if profile.WeightKG > 0 {
			fmt.Fprintf(&sb, "- Weight: %.0f kg\n", profile.WeightKG)
		}
		if len(profile.FavoriteStyles) > 0 {
			fmt.Fprintf(&sb, "- Favorite styles: %s\n", strings.Join(profile.FavoriteStyles, ", "))
		}
		if profile.ThermalPreference != "" {
			fmt.Fprintf(&sb, "- Thermal preference: %s\n", profile.ThermalPreference)
		}
		if profile.Dislikes != "" {
			fmt.Fprintf(&sb, "- Dislikes: %s\n", profile.Dislikes)
		}
		if profile.CustomDescription != "" {
			fmt.Fprintf(&sb, "- Notes: %s\n", profile.CustomDescription)
		}
	}

	sb.WriteString("\nReturn ONLY the JSON object, no markdown, no explanation.\n")
	return sb.String()
}
