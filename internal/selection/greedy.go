// Package selection implements the default wardrobe-selection engine: a
// greedy per-category scorer over warmth, occasion, and style fit.
package selection

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/fashion-assistant/internal/outfit"
	"github.com/jonathan/fashion-assistant/internal/types"
)

// occasionStyles biases item styles toward each occasion bucket.
var occasionStyles = map[types.Occasion][]string{
	types.OccasionDate:   {"elegant", "romantic", "minimal"},
	types.OccasionDaily:  {"casual", "street", "minimal", "loungewear"},
	types.OccasionSport:  {"sport", "outdoor"},
	types.OccasionWork:   {"business", "workwear", "preppy"},
	types.OccasionFormal: {"formal", "business", "elegant"},
}

// softExclusionPenalty is subtracted from items the caller asked to avoid.
// It is a bias, not a ban: when nothing else fits, an excluded item can
// still be chosen.
const softExclusionPenalty = 5.0

// GreedyEngine is the default outfit.SelectionEngine.
type GreedyEngine struct{}

// NewGreedyEngine returns the default engine.
func NewGreedyEngine() *GreedyEngine {
	return &GreedyEngine{}
}

// Recommend builds one outfit candidate: required items first, then the
// best-scoring item for each uncovered core category (top, bottom, shoes,
// plus outerwear when requested). It returns at most one candidate and an
// empty list when no core garment can be placed.
func (e *GreedyEngine) Recommend(ctx context.Context, wardrobe []types.ClothingItem, weather types.WeatherSnapshot,
	occasion types.Occasion, gender, style string, needsOuter bool, c outfit.Constraints) ([]types.OutfitCandidate, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byID := make(map[int64]types.ClothingItem, len(wardrobe))
	for _, item := range wardrobe {
		byID[item.ID] = item
	}

	var items []types.ClothingItem
	covered := make(map[types.Category]bool)

	// Required (locked) items are placed unconditionally.
	for _, id := range c.RequiredIDs {
		item, ok := byID[id]
		if !ok {
			continue
		}
		items = append(items, item)
		covered[item.Category] = true
	}

	wanted := []types.Category{types.CategoryTop, types.CategoryBottom, types.CategoryShoes}
	if needsOuter {
		wanted = append(wanted, types.CategoryOuter)
	}

	picked := false
	for _, category := range wanted {
		if covered[category] {
			picked = true
			continue
		}
		if item, ok := e.bestFor(wardrobe, category, weather, occasion, style, c.ExcludedIDs, items); ok {
			items = append(items, item)
			covered[category] = true
			picked = true
		}
	}

	if !picked || len(items) == 0 {
		return nil, nil
	}
	return []types.OutfitCandidate{{Items: items}}, nil
}

// bestFor finds the highest-scoring wardrobe item of a category that is
// not already part of the outfit.
func (e *GreedyEngine) bestFor(wardrobe []types.ClothingItem, category types.Category, weather types.WeatherSnapshot,
	occasion types.Occasion, style string, excluded map[int64]bool, chosen []types.ClothingItem) (types.ClothingItem, bool) {

	inOutfit := make(map[int64]bool, len(chosen))
	for _, item := range chosen {
		inOutfit[item.ID] = true
	}

	candidates := make([]types.ClothingItem, 0)
	for _, item := range wardrobe {
		if item.Category == category && !inOutfit[item.ID] {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return types.ClothingItem{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return e.score(candidates[i], weather, occasion, style, excluded) >
			e.score(candidates[j], weather, occasion, style, excluded)
	})
	return candidates[0], true
}

// score rates one item for the current request. Warmth fit dominates;
// occasion and style matches add on top; soft-excluded items are pushed
// down but never removed.
func (e *GreedyEngine) score(item types.ClothingItem, weather types.WeatherSnapshot,
	occasion types.Occasion, style string, excluded map[int64]bool) float64 {

	score := 10.0 - math.Abs(float64(item.Warmth)-idealWarmth(weather.FeelsLike))

	for _, s := range occasionStyles[occasion] {
		if item.Style == s {
			score += 3
			break
		}
	}

	if style != "" && strings.Contains(strings.ToLower(item.Style), strings.ToLower(style)) {
		score += 2
	}

	if excluded[item.ID] {
		score -= softExclusionPenalty
	}
	return score
}

// idealWarmth maps a feels-like temperature onto the 1..10 warmth scale.
func idealWarmth(feelsLike float64) float64 {
	switch {
	case feelsLike <= 5:
		return 9
	case feelsLike <= 12:
		return 7
	case feelsLike <= 18:
		return 6
	case feelsLike <= 24:
		return 4
	case feelsLike <= 30:
		return 2
	default:
		return 1
	}
}
