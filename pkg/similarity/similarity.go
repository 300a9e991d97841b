// Package similarity scores how alike two still images are.
//
// The score is a per-pixel simplification of the structural similarity index:
// each pixel is treated as its own window, so the mean of the window is the
// pixel value and the variance terms vanish. The result is the average over
// all pixels and lies in [0, 1], with 1 for identical images.
package similarity

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/user/framefix/pkg/ports"
)

const (
	k1 = 0.01
	k2 = 0.03
	l  = 255.0
	c1 = (k1 * l) * (k1 * l)
	c2 = (k2 * l) * (k2 * l)
)

// PixelScorer implements ports.Scorer for image files.
type PixelScorer struct {
	fs      ports.FileSystem
	workers int
}

var _ ports.Scorer = (*PixelScorer)(nil)

// NewPixelScorer creates a scorer that reads images through fs and
// spreads rows over workers goroutines (0 means runtime.NumCPU()).
func NewPixelScorer(fs ports.FileSystem, workers int) *PixelScorer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &PixelScorer{fs: fs, workers: workers}
}

// Score decodes both files and compares them.
func (s *PixelScorer) Score(ctx context.Context, pathA, pathB string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	a, err := s.load(pathA)
	if err != nil {
		return 0, err
	}
	b, err := s.load(pathB)
	if err != nil {
		return 0, err
	}
	return scorePlanes(ctx, a, b, s.workers)
}

func (s *PixelScorer) load(path string) (*lumaPlane, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return toLuma(img), nil
}

// ScoreImages compares two decoded images using the given number of workers.
func ScoreImages(ctx context.Context, a, b image.Image, workers int) (float64, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return scorePlanes(ctx, toLuma(a), toLuma(b), workers)
}

func scorePlanes(ctx context.Context, a, b *lumaPlane, workers int) (float64, error) {
	if a.width != b.width || a.height != b.height {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, a.width, a.height, b.width, b.height)
	}
	if a.width == 0 || a.height == 0 {
		return 0, ErrEmptyImage
	}
	if workers > a.height {
		workers = a.height
	}

	// Each row's sum lands at its own index and the rows are added up in
	// order afterwards, so the result does not depend on scheduling.
	rowSums := make([]float64, a.height)
	rows := make(chan int, a.height)
	for y := 0; y < a.height; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				select {
				case <-ctx.Done():
					return
				default:
				}
				rowSums[y] = rowScore(a.row(y), b.row(y))
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var total float64
	for _, v := range rowSums {
		total += v
	}
	return total / float64(a.width*a.height), nil
}

func rowScore(ra, rb []uint8) float64 {
	var sum float64
	for x := range ra {
		sum += pixelScore(float64(ra[x]), float64(rb[x]))
	}
	return sum
}

func pixelScore(p1, p2 float64) float64 {
	mu1, mu2 := p1, p2
	s1 := (p1 - mu1) * (p1 - mu1)
	s2 := (p2 - mu2) * (p2 - mu2)
	s12 := (p1 - mu1) * (p2 - mu2)

	num := (2*mu1*mu2 + c1) * (2*s12 + c2)
	den := (mu1*mu1 + mu2*mu2 + c1) * (s1 + s2 + c2)
	return num / den
}
