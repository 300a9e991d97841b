// Package pipeline provides the stage abstraction and shared data model for framefix.
package pipeline

import (
	"context"
	"fmt"
)

// Stage represents a processing step of a job.
// Each stage takes an input and produces an output.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc is a function adapter for Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage interface.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}

// Named wraps a stage so that its errors carry the stage name,
// e.g. "decode stage: ffmpeg exited with status 1".
func Named[In, Out any](name string, s Stage[In, Out]) Stage[In, Out] {
	return StageFunc[In, Out](func(ctx context.Context, input In) (Out, error) {
		out, err := s.Execute(ctx, input)
		if err != nil {
			return out, fmt.Errorf("%s stage: %w", name, err)
		}
		return out, nil
	})
}
