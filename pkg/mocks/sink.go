package mocks

import (
	"image"
	"sync"

	"github.com/user/framefix/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	DecisionsJSON []byte
	ScoreChart    image.Image
	DroppedFrames map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:       enabled,
		DroppedFrames: make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveDecisionsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecisionsJSON = data
	return nil
}

func (m *DebugSink) SaveScoreChart(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoreChart = img
	return nil
}

func (m *DebugSink) SaveDroppedFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DroppedFrames[index] = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                                     { return false }
func (m *NullSink) SaveDecisionsJSON(data []byte) error               { return nil }
func (m *NullSink) SaveScoreChart(img image.Image) error              { return nil }
func (m *NullSink) SaveDroppedFrame(index int, img image.Image) error { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
