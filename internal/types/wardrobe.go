// Package types defines the shared data structures exchanged between the
// tagging, recommendation, and persistence layers.
package types

import "time"

// Category is the canonical five-way clothing taxonomy.
type Category string

// Category constants define the output taxonomy for tagged items.
const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryOuter     Category = "outer"
	CategoryShoes     Category = "shoes"
	CategoryAccessory Category = "accessory"
)

// Valid reports whether c is one of the five canonical categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryOuter, CategoryShoes, CategoryAccessory:
		return true
	}
	return false
}

// Styles lists the named styles a tag may carry. Anything the model returns
// outside this list is normalized to StyleOther.
var Styles = []string{
	"casual", "formal", "sport", "street", "minimal",
	"vintage", "preppy", "bohemian", "business", "elegant",
	"romantic", "punk", "outdoor", "loungewear", "workwear",
}

// StyleOther is the catch-all style bucket.
const StyleOther = "other-mixed"

// DefaultWarmth is assigned to items whose warmth is not otherwise known.
// The model is never asked for warmth; it is defaulted here and may be
// edited by the user later.
const DefaultWarmth = 5

// TagRecord is one model- or fallback-produced label for a single image.
type TagRecord struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Color    string   `json:"color"`
	Style    string   `json:"style"`
}

// ClothingItem is a wardrobe entry owned by the persistence layer. The
// recommendation core references items but never mutates them.
type ClothingItem struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Color     string    `json:"color"`
	Style     string    `json:"style"`
	Warmth    int       `json:"warmth"` // 1..10
	ImageHash string    `json:"image_hash,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// WeatherSnapshot is an immutable weather reading for one city.
type WeatherSnapshot struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Description string  `json:"description"`
	City        string  `json:"city"`
}
