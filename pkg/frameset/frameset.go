// Package frameset collects the still images of a decoded video in playback order.
package frameset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/user/framefix/pkg/pipeline"
)

// imageExtensions lists the recognised still-image extensions (lowercase).
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
	".gif":  true,
}

// IsImageFile reports whether name has a recognised still-image extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Collector walks a directory tree for frame images.
type Collector struct {
	limit int
}

// NewCollector creates a Collector that reads at most limit directories
// concurrently (0 means runtime.NumCPU()).
func NewCollector(limit int) *Collector {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &Collector{limit: limit}
}

// Collect is a shorthand for NewCollector(0).Collect.
func Collect(ctx context.Context, root string) ([]pipeline.Frame, error) {
	return NewCollector(0).Collect(ctx, root)
}

// Collect returns every image file below root, ordered by the number at the
// end of the file name (frame_0012.png is 12). Files without a number come
// last. A missing root yields an empty result.
func (c *Collector) Collect(ctx context.Context, root string) ([]pipeline.Frame, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []pipeline.Frame{}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []pipeline.Frame{}, nil
	}

	var (
		mu     sync.Mutex
		frames []pipeline.Frame
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	var walk func(dir string) error
	walk = func(dir string) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read dir %s: %w", dir, err)
		}

		var found []pipeline.Frame
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				sub := path
				// Fall back to walking inline when every slot is busy, so a
				// deep tree cannot exhaust the limit while parents wait.
				if !g.TryGo(func() error { return walk(sub) }) {
					if err := walk(sub); err != nil {
						return err
					}
				}
				continue
			}
			if !entry.Type().IsRegular() || !IsImageFile(entry.Name()) {
				continue
			}
			found = append(found, pipeline.Frame{
				Path:   path,
				Number: FrameNumber(entry.Name()),
			})
		}

		mu.Lock()
		frames = append(frames, found...)
		mu.Unlock()
		return nil
	}

	g.Go(func() error { return walk(root) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortFrames(frames)
	for i := range frames {
		frames[i].Index = i
	}
	if frames == nil {
		frames = []pipeline.Frame{}
	}
	return frames, nil
}

// FrameNumber parses the trailing digits of the file stem, or returns -1.
func FrameNumber(name string) int {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	end := len(stem)
	start := end
	for start > 0 && stem[start-1] >= '0' && stem[start-1] <= '9' {
		start--
	}
	if start == end {
		return -1
	}
	n, err := strconv.Atoi(stem[start:end])
	if err != nil {
		return -1
	}
	return n
}

func sortFrames(frames []pipeline.Frame) {
	sort.Slice(frames, func(i, j int) bool {
		a, b := frames[i], frames[j]
		aNumbered, bNumbered := a.Number >= 0, b.Number >= 0
		if aNumbered != bNumbered {
			return aNumbered
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.Path < b.Path
	})
}
