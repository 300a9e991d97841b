// Package compact renumbers surviving frames into a gapless sequence.
// The image sequence demuxer stops at the first missing number, so frames
// left after deduplication must be renamed before encoding.
package compact

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/framefix/pkg/pipeline"
	"github.com/user/framefix/pkg/ports"
)

// DefaultPattern is the file name pattern of the renumbered sequence, without extension.
const DefaultPattern = "frame_%04d"

// SequenceDir is the subdirectory of the workspace that receives the renumbered frames.
const SequenceDir = "sequence"

var (
	// ErrMixedExtensions is returned when surviving frames do not share one image format.
	ErrMixedExtensions = errors.New("compact: frames have mixed file extensions")

	// ErrNothingToEncode is returned when no frame survived.
	ErrNothingToEncode = errors.New("compact: no frames left")
)

// Stage moves kept frames into a fresh directory as frame_0001, frame_0002, ...
type Stage struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new compact stage.
func NewStage(fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		logger: logger.WithComponent("compact"),
	}
}

// Execute moves every kept frame, in order, into <Dir>/sequence. Moving into
// an empty directory means files that could not be deleted earlier never end
// up inside the sequence.
func (s *Stage) Execute(ctx context.Context, input pipeline.CompactInput) (pipeline.CompactResult, error) {
	pattern := input.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if len(input.Decisions) != len(input.Frames) {
		return pipeline.CompactResult{}, fmt.Errorf("compact: %d decisions for %d frames", len(input.Decisions), len(input.Frames))
	}

	var kept []pipeline.Frame
	for i, d := range input.Decisions {
		if d.Keep {
			kept = append(kept, input.Frames[i])
		}
	}
	if len(kept) == 0 {
		return pipeline.CompactResult{}, ErrNothingToEncode
	}

	ext := strings.ToLower(filepath.Ext(kept[0].Path))
	for _, f := range kept[1:] {
		if strings.ToLower(filepath.Ext(f.Path)) != ext {
			return pipeline.CompactResult{}, fmt.Errorf("%w: %s and %s", ErrMixedExtensions, kept[0].Path, f.Path)
		}
	}

	dir := filepath.Join(input.Dir, SequenceDir)
	if err := s.fs.MkdirAll(dir); err != nil {
		return pipeline.CompactResult{}, fmt.Errorf("create %s: %w", dir, err)
	}

	out := make([]pipeline.Frame, len(kept))
	for i, f := range kept {
		select {
		case <-ctx.Done():
			return pipeline.CompactResult{}, ctx.Err()
		default:
		}

		number := i + 1
		target := filepath.Join(dir, fmt.Sprintf(pattern, number)+ext)
		if err := s.fs.Rename(f.Path, target); err != nil {
			return pipeline.CompactResult{}, fmt.Errorf("rename %s: %w", f.Path, err)
		}
		out[i] = pipeline.Frame{
			Index:  i,
			Path:   target,
			Number: number,
			Width:  f.Width,
			Height: f.Height,
		}
	}

	s.logger.Debug("Renumbered %d frames into %s", len(out), dir)
	return pipeline.CompactResult{
		Dir:         dir,
		Frames:      out,
		StartNumber: 1,
		Pattern:     pattern + ext,
	}, nil
}
