package similarity

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/user/framefix/pkg/mocks"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// gradientImage produces a deterministic pattern with varied luminance.
func gradientImage(w, h int, seed int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8((x*7 + seed) % 256),
				G: uint8((y*13 + seed*3) % 256),
				B: uint8((x*y + seed) % 256),
				A: 255,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestScoreImages_Identical(t *testing.T) {
	img := gradientImage(64, 48, 1)

	score, err := ScoreImages(context.Background(), img, img, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 1.0 {
		t.Errorf("expected 1.0 for identical images, got %v", score)
	}
}

func TestScoreImages_BlackWhite(t *testing.T) {
	black := solidImage(32, 32, color.Black)
	white := solidImage(32, 32, color.White)

	score, err := ScoreImages(context.Background(), black, white, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score >= 0.95 {
		t.Errorf("expected score below 0.95, got %v", score)
	}
	if score < 0 {
		t.Errorf("score must not be negative, got %v", score)
	}
}

func TestScoreImages_Range(t *testing.T) {
	a := gradientImage(40, 30, 3)
	b := gradientImage(40, 30, 90)

	score, err := ScoreImages(context.Background(), a, b, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score < 0 || score > 1 {
		t.Errorf("expected score within [0, 1], got %v", score)
	}
}

func TestScoreImages_DimensionMismatch(t *testing.T) {
	a := solidImage(10, 10, color.White)
	b := solidImage(10, 12, color.White)

	_, err := ScoreImages(context.Background(), a, b, 1)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestScoreImages_Empty(t *testing.T) {
	a := image.NewNRGBA(image.Rect(0, 0, 0, 0))

	_, err := ScoreImages(context.Background(), a, a, 1)
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}
}

func TestScoreImages_WorkerCountIndependent(t *testing.T) {
	a := gradientImage(97, 61, 5)
	b := gradientImage(97, 61, 6)

	var scores []float64
	for _, workers := range []int{1, 3, 8} {
		score, err := ScoreImages(context.Background(), a, b, workers)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		scores = append(scores, score)
	}

	for i := 1; i < len(scores); i++ {
		if math.Float64bits(scores[i]) != math.Float64bits(scores[0]) {
			t.Errorf("score differs between worker counts: %v vs %v", scores[0], scores[i])
		}
	}
}

func TestScoreImages_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := gradientImage(16, 16, 0)
	_, err := ScoreImages(ctx, a, a, 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPixelScore(t *testing.T) {
	tests := []struct {
		name string
		p1   float64
		p2   float64
		want float64
	}{
		{"equal zero", 0, 0, 1},
		{"equal mid", 128, 128, 1},
		{"black white", 0, 255, c1 / (255*255 + c1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelScore(tt.p1, tt.p2)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("pixelScore(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestLuma709(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint8
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{255, 0, 0, 54},
		{0, 255, 0, 182},
		{0, 0, 255, 18},
	}

	for _, tt := range tests {
		if got := luma709(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("luma709(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestPixelScorer_Score(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/frames/frame_0001.png", encodePNG(t, gradientImage(20, 20, 1)))
	fs.WriteFile("/frames/frame_0002.png", encodePNG(t, gradientImage(20, 20, 1)))
	fs.WriteFile("/frames/frame_0003.png", encodePNG(t, solidImage(20, 20, color.White)))
	fs.WriteFile("/frames/small.png", encodePNG(t, solidImage(10, 10, color.White)))

	scorer := NewPixelScorer(fs, 2)
	ctx := context.Background()

	score, err := scorer.Score(ctx, "/frames/frame_0001.png", "/frames/frame_0002.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 1.0 {
		t.Errorf("expected 1.0, got %v", score)
	}

	score, err = scorer.Score(ctx, "/frames/frame_0002.png", "/frames/frame_0003.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score >= 1.0 {
		t.Errorf("expected score below 1.0, got %v", score)
	}

	if _, err := scorer.Score(ctx, "/frames/frame_0003.png", "/frames/small.png"); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	if _, err := scorer.Score(ctx, "/frames/frame_0001.png", "/frames/missing.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPixelScorer_CorruptImage(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/a.png", []byte("not an image"))
	fs.WriteFile("/b.png", encodePNG(t, solidImage(4, 4, color.Black)))

	scorer := NewPixelScorer(fs, 1)
	if _, err := scorer.Score(context.Background(), "/a.png", "/b.png"); err == nil {
		t.Error("expected decode error")
	}
}
