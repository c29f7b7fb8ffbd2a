package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fashion-assistant/internal/types"
)

func tagObj(name, category, color, style string) map[string]any {
	return map[string]any{
		"name":     name,
		"category": category,
		"color":    color,
		"style":    style,
	}
}

func TestValidateTagBatch(t *testing.T) {
	valid := []any{
		tagObj("white tee", "top", "white", "casual"),
		tagObj("blue jeans", "pants", "blue", "street"),
	}

	t.Run("valid batch maps onto records", func(t *testing.T) {
		records := ValidateTagBatch(valid, 2)
		require.Len(t, records, 2)
		assert.Equal(t, types.TagRecord{Name: "white tee", Category: types.CategoryTop, Color: "white", Style: "casual"}, records[0])
		// "pants" is an alias for the bottom category
		assert.Equal(t, types.CategoryBottom, records[1].Category)
	})

	t.Run("count mismatch rejects the batch", func(t *testing.T) {
		assert.Nil(t, ValidateTagBatch(valid, 3))
	})

	t.Run("non-array value rejected", func(t *testing.T) {
		assert.Nil(t, ValidateTagBatch(map[string]any{"name": "x"}, 1))
		assert.Nil(t, ValidateTagBatch(nil, 0))
	})

	t.Run("missing required field rejected", func(t *testing.T) {
		batch := []any{map[string]any{"name": "tee", "category": "top", "color": "white"}}
		assert.Nil(t, ValidateTagBatch(batch, 1))
	})

	t.Run("unknown category rejects the whole batch", func(t *testing.T) {
		batch := []any{tagObj("hat", "headwear", "red", "casual")}
		assert.Nil(t, ValidateTagBatch(batch, 1))
	})

	t.Run("blank name rejected", func(t *testing.T) {
		batch := []any{tagObj("   ", "top", "white", "casual")}
		assert.Nil(t, ValidateTagBatch(batch, 1))
	})

	t.Run("warmth field is tolerated but not required", func(t *testing.T) {
		obj := tagObj("wool coat", "coat", "gray", "minimal")
		obj["warmth"] = float64(8)
		records := ValidateTagBatch([]any{obj}, 1)
		require.Len(t, records, 1)
		assert.Equal(t, types.CategoryOuter, records[0].Category)
	})

	t.Run("unknown style falls into the catch-all", func(t *testing.T) {
		batch := []any{tagObj("tee", "top", "white", "avant-garde")}
		records := ValidateTagBatch(batch, 1)
		require.Len(t, records, 1)
		assert.Equal(t, types.StyleOther, records[0].Style)
	})
}

func TestCoerceWarmth(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int
	}{
		{"float from JSON", float64(7), 7},
		{"int", 3, 3},
		{"numeric string", "6", 6},
		{"string with whitespace", " 4 ", 4},
		{"clamped high", float64(99), 10},
		{"clamped low", float64(-2), 1},
		{"unparseable string", "warm", types.DefaultWarmth},
		{"nil", nil, types.DefaultWarmth},
		{"bool", true, types.DefaultWarmth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceWarmth(tt.input))
		})
	}
}

func TestNormalizeStyle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"exact match", "casual", "casual"},
		{"uppercase match", "FORMAL", "formal"},
		{"partial match", "casual wear", "casual"},
		{"empty becomes catch-all", "", types.StyleOther},
		{"unknown becomes catch-all", "cyberpunk", "punk"},
		{"truly unknown becomes catch-all", "grunge", types.StyleOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStyle(tt.input))
		})
	}
}
