// Package outfit assembles multi-item outfit recommendations under hard
// (locked items) and soft (dislikes, reuse avoidance) constraints.
package outfit

import (
	"context"

	"github.com/jonathan/fashion-assistant/internal/types"
)

// Constraints carries the inclusion/exclusion bookkeeping handed to the
// selection engine for one round.
type Constraints struct {
	// RequiredIDs must appear in every returned candidate.
	RequiredIDs []int64
	// ExcludedIDs is a soft bias: the engine avoids these items to keep
	// variety between rounds.
	ExcludedIDs map[int64]bool
}

// SelectionEngine is the opaque wardrobe-selection capability. The scoring
// algorithm behind it is not this package's concern; the engine is
// responsible for honoring RequiredIDs.
type SelectionEngine interface {
	Recommend(ctx context.Context, wardrobe []types.ClothingItem, weather types.WeatherSnapshot,
		occasion types.Occasion, gender, style string, needsOuter bool, c Constraints) ([]types.OutfitCandidate, error)
}
