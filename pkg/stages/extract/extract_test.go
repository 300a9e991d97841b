package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/framefix/pkg/adapters/logger"
	"github.com/user/framefix/pkg/frameset"
	"github.com/user/framefix/pkg/mocks"
	"github.com/user/framefix/pkg/pipeline"
	"github.com/user/framefix/pkg/ports"
)

func decodeInto(t *testing.T, names ...string) (*mocks.MediaTool, *mocks.Workspace) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "ws")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range names {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644)
	}
	ws := mocks.NewWorkspace(dir)
	tool := &mocks.MediaTool{
		DecodeFunc: func(ctx context.Context, inputPath string) (ports.Workspace, error) {
			return ws, nil
		},
	}
	return tool, ws
}

func TestStage_Execute(t *testing.T) {
	tool, ws := decodeInto(t, "frame_0003.png", "frame_0001.png", "frame_0002.png")
	stage := NewStage(tool, frameset.NewCollector(2), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ExtractInput{InputPath: "clip.mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tool.DecodeCalls) != 1 || tool.DecodeCalls[0] != "clip.mp4" {
		t.Errorf("unexpected decode calls: %v", tool.DecodeCalls)
	}
	if len(result.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(result.Frames))
	}
	for i, f := range result.Frames {
		if f.Number != i+1 {
			t.Errorf("frame %d: expected number %d, got %d", i, i+1, f.Number)
		}
	}
	if ws.Released() {
		t.Error("workspace must stay alive on success")
	}
}

func TestStage_Execute_NoFrames(t *testing.T) {
	tool, ws := decodeInto(t, "notes.txt")
	stage := NewStage(tool, frameset.NewCollector(1), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ExtractInput{InputPath: "empty.mp4"})
	if !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
	if !ws.Released() {
		t.Error("expected workspace to be released")
	}
}

func TestStage_Execute_DecodeError(t *testing.T) {
	decodeErr := errors.New("ffmpeg exited with status 1")
	tool := &mocks.MediaTool{
		DecodeFunc: func(ctx context.Context, inputPath string) (ports.Workspace, error) {
			return nil, decodeErr
		},
	}
	stage := NewStage(tool, frameset.NewCollector(1), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.ExtractInput{InputPath: "broken.mp4"})
	if !errors.Is(err, decodeErr) {
		t.Errorf("expected decode error, got %v", err)
	}
}
