package encode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/framefix/pkg/adapters/logger"
	"github.com/user/framefix/pkg/adapters/osfilesystem"
	"github.com/user/framefix/pkg/mocks"
	"github.com/user/framefix/pkg/pipeline"
	"github.com/user/framefix/pkg/ports"
)

func TestStage_Execute(t *testing.T) {
	tool := &mocks.MediaTool{}
	stage := NewStage(tool, osfilesystem.New(), logger.NewNoop())

	out := filepath.Join(t.TempDir(), "nested", "clip_processed.mp4")
	opts := ports.DefaultEncodeOptions()
	opts.FrameRate = 25

	result, err := stage.Execute(context.Background(), pipeline.EncodeInput{
		FramesDir:  "/ws/sequence",
		Pattern:    "frame_%04d.png",
		OutputPath: out,
		Options:    opts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tool.EncodeCalls) != 1 {
		t.Fatalf("expected 1 Encode call, got %d", len(tool.EncodeCalls))
	}
	call := tool.EncodeCalls[0]
	if call.FramesDir != "/ws/sequence" {
		t.Errorf("unexpected frames dir %s", call.FramesDir)
	}
	if call.OutputPath == out {
		t.Error("expected encoding into a temporary path")
	}
	if !strings.HasSuffix(call.OutputPath, ".mp4") || !strings.Contains(filepath.Base(call.OutputPath), ".partial") {
		t.Errorf("unexpected partial path %s", call.OutputPath)
	}
	if call.Options.FrameRate != 25 {
		t.Errorf("expected frame rate 25, got %v", call.Options.FrameRate)
	}

	if result.OutputPath != out {
		t.Errorf("expected output %s, got %s", out, result.OutputPath)
	}
	if result.FileSize != int64(len("mock video")) {
		t.Errorf("unexpected file size %d", result.FileSize)
	}
	if _, err := os.Stat(call.OutputPath); !os.IsNotExist(err) {
		t.Error("partial file should have been renamed")
	}
}

func TestStage_Execute_FailureLeavesNoOutput(t *testing.T) {
	encodeErr := errors.New("ffmpeg exited with status 1")
	tool := &mocks.MediaTool{
		EncodeFunc: func(ctx context.Context, framesDir, outputPath string, opts ports.EncodeOptions) error {
			// Simulate a truncated file written before the failure.
			os.WriteFile(outputPath, []byte("trunc"), 0644)
			return encodeErr
		},
	}
	stage := NewStage(tool, osfilesystem.New(), logger.NewNoop())

	dir := t.TempDir()
	out := filepath.Join(dir, "clip_processed.mp4")
	_, err := stage.Execute(context.Background(), pipeline.EncodeInput{FramesDir: "/ws", OutputPath: out, Options: ports.DefaultEncodeOptions()})
	if !errors.Is(err, encodeErr) {
		t.Fatalf("expected encode error, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty output dir, found %d entries", len(entries))
	}
}

func TestStage_Execute_NoOutputPath(t *testing.T) {
	stage := NewStage(&mocks.MediaTool{}, mocks.NewFileSystem(), logger.NewNoop())

	if _, err := stage.Execute(context.Background(), pipeline.EncodeInput{FramesDir: "/ws"}); err == nil {
		t.Error("expected error for missing output path")
	}
}

func TestPartialPath(t *testing.T) {
	p := PartialPath(filepath.Join("out", "clip_processed.mp4"))

	if filepath.Dir(p) != "out" {
		t.Errorf("partial must be a sibling of the output, got %s", p)
	}
	base := filepath.Base(p)
	if !strings.HasPrefix(base, ".clip_processed.") || !strings.HasSuffix(base, ".partial.mp4") {
		t.Errorf("unexpected partial name %s", base)
	}
	if PartialPath("clip.mp4") == PartialPath("clip.mp4") {
		t.Error("partial names must be unique")
	}
}
