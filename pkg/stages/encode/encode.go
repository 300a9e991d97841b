// Package encode implements the stage that assembles frames into the output video.
package encode

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/user/framefix/pkg/pipeline"
	"github.com/user/framefix/pkg/ports"
)

// Stage encodes a frame sequence into a video file.
// The video is written to a hidden sibling first and renamed into place,
// so a failed or interrupted run never leaves a truncated output behind.
type Stage struct {
	tool   ports.MediaTool
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(tool ports.MediaTool, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		tool:   tool,
		fs:     fs,
		logger: logger.WithComponent("encode"),
	}
}

// Execute encodes input.FramesDir into input.OutputPath.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	if input.OutputPath == "" {
		return result, fmt.Errorf("no output path")
	}

	opts := input.Options
	if input.Pattern != "" {
		opts.Pattern = input.Pattern
	}

	dir := filepath.Dir(input.OutputPath)
	if err := s.fs.MkdirAll(dir); err != nil {
		return result, fmt.Errorf("create output dir: %w", err)
	}

	partial := PartialPath(input.OutputPath)
	s.logger.Info("Encoding at %.2f fps", opts.FrameRate)

	if err := s.tool.Encode(ctx, input.FramesDir, partial, opts); err != nil {
		s.discard(partial)
		return result, err
	}

	if err := s.fs.Rename(partial, input.OutputPath); err != nil {
		s.discard(partial)
		return result, fmt.Errorf("move output into place: %w", err)
	}

	size, err := s.fs.Size(input.OutputPath)
	if err != nil {
		return result, fmt.Errorf("stat output: %w", err)
	}

	result.OutputPath = input.OutputPath
	result.FileSize = size
	s.logger.Debug("Video encoded: %d bytes", size)
	return result, nil
}

func (s *Stage) discard(partial string) {
	if ok, _ := s.fs.Exists(partial); !ok {
		return
	}
	if err := s.fs.Remove(partial); err != nil {
		s.logger.Warn("Could not remove partial output %s: %v", partial, err)
	}
}

// PartialPath returns the temporary name used while encoding to outputPath,
// e.g. out/.clip_processed.1b2c3d4e.partial.mp4. The extension is kept so
// the encoder can infer the container.
func PartialPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.partial%s", stem, uuid.NewString()[:8], ext))
}
