package mocks

import (
	"sync"
	"time"

	"github.com/user/framefix/pkg/ports"
)

// MetricsRecorder is a mock implementation of ports.MetricsRecorder.
type MetricsRecorder struct {
	mu sync.Mutex

	Stages       []string
	StageErrors  int
	PairsScored  int
	PairErrors   int
	Dropped      int
	DeleteErrors int
	FinalState   string
}

func (m *MetricsRecorder) StageCompleted(stage string, d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stages = append(m.Stages, stage)
	if err != nil {
		m.StageErrors++
	}
}

func (m *MetricsRecorder) PairScored(score float64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PairsScored++
	if err != nil {
		m.PairErrors++
	}
}

func (m *MetricsRecorder) FramesDropped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dropped += n
}

func (m *MetricsRecorder) DeleteFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteErrors++
}

func (m *MetricsRecorder) JobFinished(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalState = state
}

var _ ports.MetricsRecorder = (*MetricsRecorder)(nil)
