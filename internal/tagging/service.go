package tagging

import (
	"context"
	"fmt"

	"github.com/jonathan/fashion-assistant/internal/llm"
	"github.com/jonathan/fashion-assistant/internal/observability"
	"github.com/jonathan/fashion-assistant/internal/repair"
	"github.com/jonathan/fashion-assistant/internal/types"
)

// Service drives the tagging state machine: Tier1 → Tier2 → LocalFallback,
// terminal on the first stage that yields a valid batch.
type Service struct {
	caller   *llm.Caller
	tiers    []llm.ModelTier
	fallback *FallbackAdapter
	log      *observability.Logger
}

// NewService wires the tagging service. Tiers are attempted in the order
// given; the fallback adapter handles everything the tiers cannot.
func NewService(caller *llm.Caller, tiers []llm.ModelTier, fallback *FallbackAdapter, log *observability.Logger) *Service {
	return &Service{caller: caller, tiers: tiers, fallback: fallback, log: log}
}

// BatchAutoTag tags a batch of images. The result is positionally aligned
// with the input: either a validated model batch of exactly len(images)
// records or, after every tier fails, one local-fallback record per image.
// It never returns an error; an empty input yields nil.
func (s *Service) BatchAutoTag(ctx context.Context, images [][]byte) []types.TagRecord {
	if len(images) == 0 {
		return nil
	}

	req := llm.Request{
		Prompt: buildBatchPrompt(len(images)),
		Images: images,
	}

	for _, tier := range s.tiers {
		if records := s.tryTier(ctx, tier, req, len(images)); records != nil {
			return records
		}
	}

	s.log.Eventf("tagging", "all tiers failed, using local fallback for %d images", len(images))
	records := make([]types.TagRecord, 0, len(images))
	for i, image := range images {
		records = append(records, s.fallback.TagOne(ctx, image, i))
	}
	return records
}

// tryTier runs one tier to completion and validates its reply. A nil
// return means the tier produced no usable batch and the next stage
// should run.
func (s *Service) tryTier(ctx context.Context, tier llm.ModelTier, req llm.Request, expected int) []types.TagRecord {
	stage := fmt.Sprintf("tagging:%s", tier)

	text, err := s.caller.Call(ctx, tier, req)
	if err != nil {
		s.log.Eventf(stage, "call failed: %v", err)
		return nil
	}

	value := repair.ParseJSON(text)
	if value == nil {
		s.log.Eventf(stage, "reply was not parseable JSON")
		return nil
	}

	records := repair.ValidateTagBatch(value, expected)
	if records == nil {
		s.log.Eventf(stage, "reply failed batch validation (want %d records)", expected)
		return nil
	}

	s.log.Eventf(stage, "tagged %d images", expected)
	return records
}
