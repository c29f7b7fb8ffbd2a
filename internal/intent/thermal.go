package intent

import "github.com/jonathan/fashion-assistant/internal/types"

// Thermal override thresholds in °C.
const (
	coldSensitiveBelow = 24.0
	heatSensitiveAbove = 25.0
)

// ApplyThermalOverride corrects the normalizer's outerwear decision from
// the user's thermal preference. Cold-sensitive users get outerwear below
// 24°C; heat-sensitive users drop it above 25°C. The two branches are
// mutually exclusive by construction of the preference enum, so the rule
// is total and order-independent. No model call is involved.
func ApplyThermalOverride(decision types.IntentDecision, pref types.ThermalPreference, temperature float64) types.IntentDecision {
	switch {
	case pref == types.ThermalColdSensitive && temperature < coldSensitiveBelow:
		decision.NeedsOuter = true
	case pref == types.ThermalHeatSensitive && temperature > heatSensitiveAbove:
		decision.NeedsOuter = false
	}
	return decision
}
