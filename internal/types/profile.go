package types

import "strings"

// ThermalPreference captures how sensitive a user is to temperature.
type ThermalPreference string

// Thermal preference values. The two sensitive values are mutually
// exclusive, which keeps the outerwear override rules order-independent.
const (
	ThermalNormal        ThermalPreference = "normal"
	ThermalColdSensitive ThermalPreference = "cold_sensitive"
	ThermalHeatSensitive ThermalPreference = "heat_sensitive"
)

// UserProfile holds the styling preferences a user has saved.
type UserProfile struct {
	Dislikes          string            `json:"dislikes"` // comma-separated keywords
	ThermalPreference ThermalPreference `json:"thermal_preference"`
	CustomDescription string            `json:"custom_description,omitempty"`
	HeightCM          float64           `json:"height_cm,omitempty"`
	WeightKG          float64           `json:"weight_kg,omitempty"`
	Gender            string            `json:"gender,omitempty"`
	FavoriteStyles    []string          `json:"favorite_styles,omitempty"`
}

// DislikeKeywords splits the comma-separated dislikes string into trimmed,
// lowercased keywords, dropping empties.
func (p *UserProfile) DislikeKeywords() []string {
	if p == nil || p.Dislikes == "" {
		return nil
	}
	parts := strings.Split(p.Dislikes, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		kw := strings.ToLower(strings.TrimSpace(part))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
