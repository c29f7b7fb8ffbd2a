// Package vision provides the non-generative local image classifier that
// backs the tagging fallback path: dominant color from a pixel sample
// plus an aspect-ratio garment guess.
package vision

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // register decoders for the classifier
	_ "image/png"

	"github.com/jonathan/fashion-assistant/internal/tagging"
)

// HeuristicClassifier implements tagging.LocalClassifier without any
// network access.
type HeuristicClassifier struct{}

// NewHeuristicClassifier returns the local classifier.
func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

// namedColor is a reference point for nearest-color matching.
type namedColor struct {
	name    string
	r, g, b int
}

var palette = []namedColor{
	{"black", 20, 20, 20},
	{"white", 240, 240, 240},
	{"gray", 128, 128, 128},
	{"red", 200, 40, 40},
	{"orange", 230, 140, 40},
	{"yellow", 230, 210, 60},
	{"green", 60, 160, 70},
	{"blue", 50, 90, 190},
	{"navy", 25, 35, 80},
	{"purple", 130, 70, 170},
	{"pink", 230, 150, 180},
	{"brown", 120, 80, 50},
	{"beige", 215, 195, 165},
}

// Analyze decodes the image and produces a degraded-but-usable analysis.
func (c *HeuristicClassifier) Analyze(ctx context.Context, img []byte) (*tagging.LocalAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	decoded, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, err
	}

	return &tagging.LocalAnalysis{
		Colors:   []string{dominantColor(decoded)},
		Category: guessGarment(decoded.Bounds()),
		Styles:   []string{"casual"},
	}, nil
}

// dominantColor samples a coarse grid and snaps the average to the
// nearest palette entry.
func dominantColor(img image.Image) string {
	bounds := img.Bounds()
	if bounds.Empty() {
		return "unknown"
	}

	const grid = 16
	stepX := max(bounds.Dx()/grid, 1)
	stepY := max(bounds.Dy()/grid, 1)

	var sumR, sumG, sumB, n int64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += int64(r >> 8)
			sumG += int64(g >> 8)
			sumB += int64(b >> 8)
			n++
		}
	}
	if n == 0 {
		return "unknown"
	}

	avgR := int(sumR / n)
	avgG := int(sumG / n)
	avgB := int(sumB / n)

	best := palette[0]
	bestDist := 1 << 30
	for _, c := range palette {
		dr, dg, db := avgR-c.r, avgG-c.g, avgB-c.b
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best.name
}

// guessGarment uses the photo's aspect ratio as a weak garment signal:
// wide crops are usually laid-flat tops, tall crops trousers or dresses.
func guessGarment(bounds image.Rectangle) string {
	if bounds.Dy() == 0 {
		return ""
	}
	ratio := float64(bounds.Dx()) / float64(bounds.Dy())
	switch {
	case ratio > 1.15:
		return "shirt"
	case ratio < 0.7:
		return "trousers"
	default:
		return "t-shirt"
	}
}
