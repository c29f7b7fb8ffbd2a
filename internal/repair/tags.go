package repair

import (
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/fashion-assistant/internal/types"
)

// tagRecordSchema is the canonical shape of one model-produced tag. The
// model is asked for name/category/color/style only; warmth is tolerated
// for compatibility with older replies but never required.
const tagRecordSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "category", "color", "style"],
    "properties": {
      "name": {"type": "string", "minLength": 1},
      "category": {"type": "string", "minLength": 1},
      "color": {"type": "string", "minLength": 1},
      "style": {"type": "string", "minLength": 1},
      "warmth": {"type": ["integer", "number", "string"]}
    }
  }
}`

var tagSchemaLoader = gojsonschema.NewStringLoader(tagRecordSchema)

// categoryAliases maps the category vocabulary the model may answer with
// onto the canonical five-way taxonomy.
var categoryAliases = map[string]types.Category{
	"top":       types.CategoryTop,
	"tops":      types.CategoryTop,
	"shirt":     types.CategoryTop,
	"bottom":    types.CategoryBottom,
	"bottoms":   types.CategoryBottom,
	"pants":     types.CategoryBottom,
	"skirt":     types.CategoryBottom,
	"outer":     types.CategoryOuter,
	"outerwear": types.CategoryOuter,
	"jacket":    types.CategoryOuter,
	"coat":      types.CategoryOuter,
	"shoes":     types.CategoryShoes,
	"shoe":      types.CategoryShoes,
	"footwear":  types.CategoryShoes,
	"accessory": types.CategoryAccessory,
	"accessories": types.CategoryAccessory,
}

// ValidateTagBatch checks a parsed model reply against the expected batch
// size and the canonical tag schema, and maps it into TagRecords. Any
// violation (wrong type, wrong count, missing field, unknown category)
// yields nil rather than a partial result.
func ValidateTagBatch(value any, expectedCount int) []types.TagRecord {
	entries, ok := value.([]any)
	if !ok || len(entries) != expectedCount {
		return nil
	}

	result, err := gojsonschema.Validate(tagSchemaLoader, gojsonschema.NewGoLoader(value))
	if err != nil || !result.Valid() {
		return nil
	}

	records := make([]types.TagRecord, 0, expectedCount)
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil
		}
		record := types.TagRecord{
			Name:     strings.TrimSpace(stringField(obj, "name")),
			Category: normalizeCategory(stringField(obj, "category")),
			Color:    strings.TrimSpace(stringField(obj, "color")),
			Style:    NormalizeStyle(stringField(obj, "style")),
		}
		if record.Name == "" || !record.Category.Valid() || record.Color == "" {
			return nil
		}
		records = append(records, record)
	}
	return records
}

// CoerceWarmth converts a warmth value of any tolerated type to an int,
// clamped to [1,10]. Unparseable or absent values fall back to the default.
func CoerceWarmth(value any) int {
	warmth := types.DefaultWarmth
	switch v := value.(type) {
	case float64:
		warmth = int(v)
	case int:
		warmth = v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			warmth = n
		}
	}
	if warmth < 1 {
		warmth = 1
	}
	if warmth > 10 {
		warmth = 10
	}
	return warmth
}

// NormalizeStyle lowercases a style string and buckets anything outside
// the named style list into the catch-all.
func NormalizeStyle(style string) string {
	style = strings.ToLower(strings.TrimSpace(style))
	for _, known := range types.Styles {
		if style == known {
			return known
		}
	}
	if style == "" {
		return types.StyleOther
	}
	// Partial matches like "casual wear" still count
	for _, known := range types.Styles {
		if strings.Contains(style, known) {
			return known
		}
	}
	return types.StyleOther
}

func normalizeCategory(raw string) types.Category {
	return categoryAliases[strings.ToLower(strings.TrimSpace(raw))]
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}
