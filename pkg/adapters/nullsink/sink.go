// Package nullsink provides a debug sink that discards everything.
package nullsink

import (
	"image"

	"github.com/user/framefix/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new null sink.
func New() *Sink {
	return &Sink{}
}

func (s *Sink) Enabled() bool                                     { return false }
func (s *Sink) SaveDecisionsJSON(data []byte) error               { return nil }
func (s *Sink) SaveScoreChart(img image.Image) error              { return nil }
func (s *Sink) SaveDroppedFrame(index int, img image.Image) error { return nil }

var _ ports.DebugSink = (*Sink)(nil)
