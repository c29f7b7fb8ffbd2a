package vision

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int, fill color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAnalyzeDominantColor(t *testing.T) {
	tests := []struct {
		name     string
		fill     color.RGBA
		expected string
	}{
		{"blue", color.RGBA{50, 90, 190, 255}, "blue"},
		{"black", color.RGBA{15, 15, 15, 255}, "black"},
		{"white", color.RGBA{250, 250, 250, 255}, "white"},
		{"red", color.RGBA{205, 35, 35, 255}, "red"},
	}

	classifier := NewHeuristicClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := encodePNG(t, 64, 64, tt.fill)
			analysis, err := classifier.Analyze(context.Background(), img)
			require.NoError(t, err)
			require.NotEmpty(t, analysis.Colors)
			assert.Equal(t, tt.expected, analysis.Colors[0])
		})
	}
}

func TestAnalyzeGuessesGarmentFromAspectRatio(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		expected string
	}{
		{"wide crop reads as shirt", 120, 80, "shirt"},
		{"tall crop reads as trousers", 60, 120, "trousers"},
		{"square crop reads as t-shirt", 80, 80, "t-shirt"},
	}

	classifier := NewHeuristicClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := encodePNG(t, tt.width, tt.height, color.RGBA{128, 128, 128, 255})
			analysis, err := classifier.Analyze(context.Background(), img)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, analysis.Category)
		})
	}
}

func TestAnalyzeRejectsUndecodableInput(t *testing.T) {
	classifier := NewHeuristicClassifier()

	_, err := classifier.Analyze(context.Background(), []byte("not an image"))
	assert.Error(t, err)
}

func TestAnalyzeHonorsCancelledContext(t *testing.T) {
	classifier := NewHeuristicClassifier()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := classifier.Analyze(ctx, encodePNG(t, 10, 10, color.RGBA{0, 0, 0, 255}))
	assert.ErrorIs(t, err, context.Canceled)
}
