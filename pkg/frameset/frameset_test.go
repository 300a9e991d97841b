package frameset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCollect_Ordering(t *testing.T) {
	dir := t.TempDir()

	// Created out of order; the result must follow the numeric suffix.
	for _, name := range []string{"frame_0010.png", "frame_0002.png", "frame_0001.png", "frame_0100.png", "frame_0009.png"} {
		touch(t, filepath.Join(dir, name))
	}

	frames, err := Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"frame_0001.png", "frame_0002.png", "frame_0009.png", "frame_0010.png", "frame_0100.png"}
	if len(frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(frames))
	}
	for i, f := range frames {
		if filepath.Base(f.Path) != want[i] {
			t.Errorf("frame %d: expected %s, got %s", i, want[i], filepath.Base(f.Path))
		}
		if f.Index != i {
			t.Errorf("frame %d: expected index %d, got %d", i, i, f.Index)
		}
	}
}

func TestCollect_FiltersNonImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "frame_0001.png"))
	touch(t, filepath.Join(dir, "frame_0002.JPG"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "frame_0003.webp"))
	touch(t, filepath.Join(dir, "video.mp4"))

	frames, err := Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 3 {
		t.Errorf("expected 3 frames, got %d", len(frames))
	}
}

func TestCollect_Nested(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a", "frame_0003.png"))
	touch(t, filepath.Join(dir, "b", "c", "frame_0001.png"))
	touch(t, filepath.Join(dir, "frame_0002.png"))
	touch(t, filepath.Join(dir, "b", "d", "e", "frame_0004.png"))

	collector := NewCollector(1)
	frames, err := collector.Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(frames))
	}
	for i, f := range frames {
		if f.Number != i+1 {
			t.Errorf("frame %d: expected number %d, got %d", i, i+1, f.Number)
		}
	}
}

func TestCollect_UnnumberedLast(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "cover.png"))
	touch(t, filepath.Join(dir, "frame_0002.png"))
	touch(t, filepath.Join(dir, "frame_0001.png"))

	frames, err := Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if filepath.Base(frames[2].Path) != "cover.png" {
		t.Errorf("expected cover.png last, got %s", frames[2].Path)
	}
	if frames[2].Number != -1 {
		t.Errorf("expected number -1, got %d", frames[2].Number)
	}
}

func TestCollect_MissingRoot(t *testing.T) {
	frames, err := Collect(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("expected no frames, got %d", len(frames))
	}
}

func TestCollect_EmptyDir(t *testing.T) {
	frames, err := Collect(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frames == nil || len(frames) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", frames)
	}
}

func TestCollect_Cancelled(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "frame_0001.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Collect(ctx, dir); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestFrameNumber(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"frame_0012.png", 12},
		{"frame_0001.png", 1},
		{"/tmp/x/frame_1234.jpg", 1234},
		{"img42.tiff", 42},
		{"cover.png", -1},
		{"frame_.png", -1},
	}

	for _, tt := range tests {
		if got := FrameNumber(tt.name); got != tt.want {
			t.Errorf("FrameNumber(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
