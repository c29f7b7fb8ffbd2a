// Package tagging orchestrates batch auto-tagging of clothing images:
// tiered model calls first, a local heuristic classifier as the last resort.
package tagging

import (
	"fmt"
	"strings"
)

// buildBatchPrompt constructs the tagging prompt for n attached images.
// The model is asked for name/category/color/style only; warmth is
// defaulted locally and never requested.
func buildBatchPrompt(n int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Analyze the %d clothing images attached to this message and return one JSON label per image.\n\n", n)
	fmt.Fprintf(&sb, "Return ONLY a JSON array with exactly %d objects:\n", n)
	sb.WriteString(`[
  {
    "name": "short item name (e.g. white t-shirt, blue jeans)",
    "category": "top|bottom|outer|shoes|accessory",
    "color": "dominant color",
    "style": "style keyword (e.g. casual, formal, sport)"
  }
]
`)
	sb.WriteString("\nIMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON array, no markdown, no explanation, no code blocks.\n")
	sb.WriteString("- The array order must match the image order exactly.\n")
	sb.WriteString("- Every object must contain all 4 fields.\n")

	return sb.String()
}
