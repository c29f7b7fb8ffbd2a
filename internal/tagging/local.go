package tagging

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/fashion-assistant/internal/types"
)

// LocalAnalysis is the raw output of a non-generative local classifier.
// Its category vocabulary is the classifier's own, not the five-way
// output taxonomy.
type LocalAnalysis struct {
	Colors            []string
	Category          string
	Styles            []string
	CategoryLocalized string
}

// LocalClassifier analyzes a single image without calling any hosted model.
type LocalClassifier interface {
	Analyze(ctx context.Context, image []byte) (*LocalAnalysis, error)
}

// categoryTable maps the classifier's garment vocabulary onto the output
// taxonomy. Full-body garments count as tops by convention; anything
// unmatched becomes an accessory.
var categoryTable = map[string]types.Category{
	// upper body
	"t-shirt": types.CategoryTop,
	"shirt":   types.CategoryTop,
	"blouse":  types.CategoryTop,
	"sweater": types.CategoryTop,
	"hoodie":  types.CategoryTop,
	"tank":    types.CategoryTop,
	// lower body
	"jeans":    types.CategoryBottom,
	"trousers": types.CategoryBottom,
	"pants":    types.CategoryBottom,
	"shorts":   types.CategoryBottom,
	"skirt":    types.CategoryBottom,
	"leggings": types.CategoryBottom,
	// outerwear
	"jacket":   types.CategoryOuter,
	"coat":     types.CategoryOuter,
	"blazer":   types.CategoryOuter,
	"parka":    types.CategoryOuter,
	"cardigan": types.CategoryOuter,
	// full-body garments map to top by convention
	"dress":    types.CategoryTop,
	"jumpsuit": types.CategoryTop,
	"overalls": types.CategoryTop,
}

// FallbackAdapter wraps a LocalClassifier so that it always produces a
// usable TagRecord. It is only consulted once every model tier has failed.
type FallbackAdapter struct {
	classifier LocalClassifier
}

// NewFallbackAdapter creates a FallbackAdapter over the given classifier.
func NewFallbackAdapter(classifier LocalClassifier) *FallbackAdapter {
	return &FallbackAdapter{classifier: classifier}
}

// TagOne tags a single image. When the classifier produces nothing usable
// it emits a placeholder record with a generated name rather than failing;
// the fallback path is expected to always succeed in some degraded form.
func (a *FallbackAdapter) TagOne(ctx context.Context, image []byte, index int) types.TagRecord {
	analysis, err := a.classifier.Analyze(ctx, image)
	if err != nil || analysis == nil {
		return placeholderRecord(index)
	}

	record := types.TagRecord{
		Category: mapCategory(analysis.Category),
		Color:    firstOr(analysis.Colors, "unknown"),
		Style:    firstOr(analysis.Styles, types.StyleOther),
	}

	name := analysis.CategoryLocalized
	if name == "" {
		name = analysis.Category
	}
	if name == "" {
		return placeholderRecord(index)
	}
	record.Name = fmt.Sprintf("%s %s", record.Color, name)
	return record
}

func mapCategory(raw string) types.Category {
	if category, ok := categoryTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return category
	}
	return types.CategoryAccessory
}

func placeholderRecord(index int) types.TagRecord {
	return types.TagRecord{
		Name:     fmt.Sprintf("untagged item %d", index+1),
		Category: types.CategoryAccessory,
		Color:    "unknown",
		Style:    types.StyleOther,
	}
}

func firstOr(values []string, fallback string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.ToLower(strings.TrimSpace(v))
		}
	}
	return fallback
}
