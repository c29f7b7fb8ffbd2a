package types

// Occasion is the normalized occasion bucket an intent call resolves to.
type Occasion string

// Occasion values recognized by the selection engine.
const (
	OccasionDate   Occasion = "date"
	OccasionDaily  Occasion = "daily"
	OccasionSport  Occasion = "sport"
	OccasionWork   Occasion = "work"
	OccasionFormal Occasion = "formal"
)

// Valid reports whether o is a recognized occasion bucket.
func (o Occasion) Valid() bool {
	switch o {
	case OccasionDate, OccasionDaily, OccasionSport, OccasionWork, OccasionFormal:
		return true
	}
	return false
}

// IntentDecision is the structured result of normalizing freeform
// occasion/style text. Only NeedsOuter is ever mutated after creation,
// by the thermal override rules.
type IntentDecision struct {
	Occasion    Occasion `json:"occasion"`
	NeedsOuter  bool     `json:"needs_outer"`
	VibeText    string   `json:"vibe_text"` // short, ~30 chars
	ParsedStyle string   `json:"parsed_style"`
}

// OutfitCandidate is one assembled outfit. Candidates are created fresh
// each assembly round and never mutated afterwards, only filtered.
type OutfitCandidate struct {
	Items []ClothingItem `json:"items"`
}

// ItemIDs returns the ids of the candidate's items in order.
func (o OutfitCandidate) ItemIDs() []int64 {
	ids := make([]int64, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Contains reports whether the candidate includes the item with the given id.
func (o OutfitCandidate) Contains(id int64) bool {
	for _, item := range o.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// RecommendationBundle is the terminal output of one recommendation request.
type RecommendationBundle struct {
	Vibe            string            `json:"vibe"`
	DetailedReasons string            `json:"detailed_reasons"`
	Recommendations []OutfitCandidate `json:"recommendations"` // at most 3
}
