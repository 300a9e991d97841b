package mocks

import (
	"context"
	"sync"

	"github.com/user/framefix/pkg/ports"
)

// Scorer is a mock implementation of ports.Scorer.
// Without ScoreFunc every pair scores 0.
type Scorer struct {
	mu        sync.Mutex
	ScoreFunc func(ctx context.Context, pathA, pathB string) (float64, error)

	// Recorded calls for verification
	Calls []ScoreCall
}

// ScoreCall records a call to Score.
type ScoreCall struct {
	PathA string
	PathB string
}

func (m *Scorer) Score(ctx context.Context, pathA, pathB string) (float64, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, ScoreCall{PathA: pathA, PathB: pathB})
	m.mu.Unlock()
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, pathA, pathB)
	}
	return 0, nil
}

// CallCount returns the number of Score calls.
func (m *Scorer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ ports.Scorer = (*Scorer)(nil)
