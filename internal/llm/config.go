// Package llm provides the Gemini client abstraction, per-tier retry logic,
// and call pacing shared by the tagging and recommendation services.
package llm

// ModelTier identifies one hosted model endpoint in the fallback priority
// order. TierPrimary is tried first; TierSecondary is the cheaper backup.
type ModelTier string

// Tier constants. Order of fallback is defined by Config.FallbackOrder.
const (
	TierPrimary   ModelTier = "primary"
	TierSecondary ModelTier = "secondary"
)

// Config holds the model configuration for the application.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model assignment.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierPrimary:   "gemini-2.5-flash",
			TierSecondary: "gemini-2.5-flash-lite",
		},
	}
}

// GetModel returns the model name for a tier, falling back to the primary
// model when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierPrimary]; ok {
		return model
	}
	return ""
}

// FallbackOrder returns the tiers in the order they should be attempted.
func (c *Config) FallbackOrder() []ModelTier {
	return []ModelTier{TierPrimary, TierSecondary}
}

// WithModel returns a copy of the config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	cfg := &Config{Models: make(map[ModelTier]string, len(c.Models))}
	for k, v := range c.Models {
		cfg.Models[k] = v
	}
	cfg.Models[tier] = model
	return cfg
}
