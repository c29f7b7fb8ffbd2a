package outfit

import (
	"context"

	"github.com/jonathan/fashion-assistant/internal/observability"
	"github.com/jonathan/fashion-assistant/internal/types"
)

// assembleRounds is the number of outfits attempted per bundle.
const assembleRounds = 3

// Assembler drives N rounds of outfit selection with growing soft
// exclusion, honoring locked items.
type Assembler struct {
	engine SelectionEngine
	log    *observability.Logger
}

// NewAssembler creates an Assembler over the given engine.
func NewAssembler(engine SelectionEngine, log *observability.Logger) *Assembler {
	return &Assembler{engine: engine, log: log}
}

// Assemble runs up to assembleRounds sequential selection rounds. Each
// accepted outfit's freely-chosen items are excluded from later rounds;
// locked items stay eligible in every round so they can appear in every
// outfit. A round that errors or returns nothing is skipped without
// aborting the rest, so the result may hold fewer than three outfits.
func (a *Assembler) Assemble(ctx context.Context, wardrobe []types.ClothingItem, weather types.WeatherSnapshot,
	decision types.IntentDecision, gender string, lockedIDs []int64) []types.OutfitCandidate {

	locked := make(map[int64]bool, len(lockedIDs))
	for _, id := range lockedIDs {
		locked[id] = true
	}

	used := make(map[int64]bool, len(lockedIDs))
	for _, id := range lockedIDs {
		used[id] = true
	}

	var outfits []types.OutfitCandidate
	for round := 1; round <= assembleRounds; round++ {
		candidates, err := a.engine.Recommend(ctx, wardrobe, weather,
			decision.Occasion, gender, decision.ParsedStyle, decision.NeedsOuter, Constraints{
				RequiredIDs: lockedIDs,
				ExcludedIDs: used,
			})
		if err != nil {
			a.log.Eventf("assemble", "round %d failed: %v", round, err)
			continue
		}
		if len(candidates) == 0 {
			a.log.Eventf("assemble", "round %d returned no candidates", round)
			continue
		}

		outfit := candidates[0]
		outfits = append(outfits, outfit)

		// Only freely-chosen items feed the soft exclusion; locked items
		// must remain eligible to reappear next round.
		for _, id := range outfit.ItemIDs() {
			if !locked[id] {
				used[id] = true
			}
		}
	}

	a.log.Eventf("assemble", "assembled %d of %d rounds", len(outfits), assembleRounds)
	return outfits
}
