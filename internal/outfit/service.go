package outfit

import (
	"context"

	"github.com/jonathan/fashion-assistant/internal/intent"
	"github.com/jonathan/fashion-assistant/internal/observability"
	"github.com/jonathan/fashion-assistant/internal/types"
)

// Request is one recommendation request after the transport layer has
// resolved its collaborator inputs.
type Request struct {
	Wardrobe      []types.ClothingItem
	Weather       types.WeatherSnapshot
	Style         string
	Occasion      string
	Profile       *types.UserProfile
	LockedItemIDs []int64
}

// Service composes the full recommendation flow: normalize → thermal
// override → assemble → dislike filter → summarize.
type Service struct {
	normalizer *intent.Normalizer
	assembler  *Assembler
	summarizer *Summarizer
	log        *observability.Logger
}

// NewService wires the recommendation service.
func NewService(normalizer *intent.Normalizer, assembler *Assembler, summarizer *Summarizer, log *observability.Logger) *Service {
	return &Service{normalizer: normalizer, assembler: assembler, summarizer: summarizer, log: log}
}

// Generate produces a bundle of up to three outfits, or nil on hard
// failure (empty wardrobe, zero assembled outfits). An empty wardrobe
// short-circuits before any model call. Soft failures inside components
// degrade rather than propagate; this method never returns an error.
func (s *Service) Generate(ctx context.Context, req Request) *types.RecommendationBundle {
	if len(req.Wardrobe) == 0 {
		s.log.Eventf("recommend", "empty wardrobe, nothing to recommend")
		return nil
	}

	decision := s.normalizer.Normalize(ctx, req.Occasion, req.Style, req.Weather, req.Profile)

	pref := types.ThermalNormal
	gender := ""
	if req.Profile != nil {
		pref = req.Profile.ThermalPreference
		gender = req.Profile.Gender
	}
	decision = intent.ApplyThermalOverride(decision, pref, req.Weather.Temperature)

	outfits := s.assembler.Assemble(ctx, req.Wardrobe, req.Weather, decision, gender, req.LockedItemIDs)
	if len(outfits) == 0 {
		s.log.Eventf("recommend", "no outfits assembled")
		return nil
	}

	var keywords []string
	if req.Profile != nil {
		keywords = req.Profile.DislikeKeywords()
	}
	outfits = FilterByDislikes(outfits, keywords)

	narrative := s.summarizer.Summarize(ctx, outfits, req.Weather, decision.Occasion, req.Profile)

	return &types.RecommendationBundle{
		Vibe:            decision.VibeText,
		DetailedReasons: narrative,
		Recommendations: outfits,
	}
}
