// Package filesink writes debug artefacts of a job to a directory.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framefix/pkg/ports"
)

// Thumbnail bounds for saved dropped frames.
const (
	thumbWidth  = 320
	thumbHeight = 320
)

// Sink saves debug output to files below baseDir:
//
//	decisions.json
//	scores.png
//	dropped/frame-0005.png
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

func (s *Sink) Enabled() bool {
	return true
}

func (s *Sink) SaveDecisionsJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "decisions.json"), data)
}

func (s *Sink) SaveScoreChart(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode score chart: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "scores.png"), data)
}

// SaveDroppedFrame stores a downscaled copy of a frame about to be deleted.
func (s *Sink) SaveDroppedFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "dropped")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(s.renderer.ResizeImage(img, thumbWidth, thumbHeight), ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode dropped frame: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index)), data)
}

var _ ports.DebugSink = (*Sink)(nil)
