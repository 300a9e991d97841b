// Package extract implements the stage that splits a video into ordered frames.
package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/framefix/pkg/pipeline"
	"github.com/user/framefix/pkg/ports"
)

// ErrNoFrames is returned when decoding produced no image files.
var ErrNoFrames = errors.New("extract: video produced no frames")

// FrameCollector lists the frame images below a directory in playback order.
type FrameCollector interface {
	Collect(ctx context.Context, root string) ([]pipeline.Frame, error)
}

// Stage decodes the input video and collects the resulting frames.
type Stage struct {
	tool      ports.MediaTool
	collector FrameCollector
	logger    ports.Logger
}

// NewStage creates a new extract stage.
func NewStage(tool ports.MediaTool, collector FrameCollector, logger ports.Logger) *Stage {
	return &Stage{
		tool:      tool,
		collector: collector,
		logger:    logger.WithComponent("extract"),
	}
}

// Execute decodes input.InputPath into a workspace. On success the caller
// owns the returned workspace; on failure it has already been released.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	s.logger.Debug("Decoding %s", input.InputPath)

	ws, err := s.tool.Decode(ctx, input.InputPath)
	if err != nil {
		return pipeline.ExtractResult{}, err
	}

	frames, err := s.collector.Collect(ctx, ws.Dir())
	if err != nil {
		ws.Release()
		return pipeline.ExtractResult{}, fmt.Errorf("collect frames: %w", err)
	}
	if len(frames) == 0 {
		ws.Release()
		return pipeline.ExtractResult{}, ErrNoFrames
	}

	s.logger.Info("Decoded %d frames", len(frames))
	return pipeline.ExtractResult{Workspace: ws, Frames: frames}, nil
}
