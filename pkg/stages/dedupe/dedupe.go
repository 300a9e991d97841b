// Package dedupe implements the stage that marks and removes stuck frames.
//
// Frames are split into contiguous batches that are scored concurrently.
// Inside a batch each frame is compared with its successor; when the score
// exceeds the threshold the earlier frame is dropped. The last frame of a
// batch is not compared forward unless ScoreBatchBoundaries is set, so it is
// always kept by default. The last frame of the sequence is always kept.
package dedupe

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/user/framefix/pkg/pipeline"
	"github.com/user/framefix/pkg/ports"
)

// Stage scores adjacent frames and decides which ones to keep.
type Stage struct {
	scorer  ports.Scorer
	fs      ports.FileSystem
	metrics ports.MetricsRecorder
	logger  ports.Logger
	workers int
}

// NewStage creates a new dedupe stage. Up to workers batches are scored
// at once (0 means runtime.NumCPU()).
func NewStage(scorer ports.Scorer, fs ports.FileSystem, metrics ports.MetricsRecorder, logger ports.Logger, workers int) *Stage {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Stage{
		scorer:  scorer,
		fs:      fs,
		metrics: metrics,
		logger:  logger.WithComponent("dedupe"),
		workers: workers,
	}
}

// Execute produces one decision per frame, in frame order. Pairs that cannot
// be compared count as dissimilar. When input.Apply is set, dropped frames
// are deleted; deletion failures are counted but do not fail the stage.
func (s *Stage) Execute(ctx context.Context, input pipeline.FilterInput) (pipeline.FilterResult, error) {
	def := pipeline.DefaultFilterInput()
	if input.BatchSize <= 0 {
		input.BatchSize = def.BatchSize
	}
	if input.Threshold <= 0 {
		input.Threshold = def.Threshold
	}

	n := len(input.Frames)
	decisions := make([]pipeline.FrameDecision, n)
	for i := range decisions {
		decisions[i] = pipeline.FrameDecision{FrameIndex: i, Keep: true}
	}
	if n == 0 {
		return pipeline.FilterResult{Decisions: decisions}, nil
	}

	// pairs[i] holds the comparison of frame i with frame i+1, if any.
	pairs := make([]*pipeline.SimilarityScore, n)

	s.logger.Debug("Scoring %d frames in batches of %d with %d workers", n, input.BatchSize, s.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for start := 0; start < n; start += input.BatchSize {
		end := min(start+input.BatchSize, n)
		g.Go(func() error {
			return s.scoreBatch(gctx, input, start, end, decisions, pairs)
		})
	}
	if err := g.Wait(); err != nil {
		return pipeline.FilterResult{}, err
	}

	result := pipeline.FilterResult{Decisions: decisions}
	for _, p := range pairs {
		if p != nil {
			result.Scores = append(result.Scores, *p)
		}
	}
	for _, d := range decisions {
		if !d.Keep {
			result.Dropped++
		}
	}
	s.metrics.FramesDropped(result.Dropped)

	if input.Apply {
		_, result.DeleteErrors = s.Delete(ctx, input.Frames, decisions)
	}

	s.logger.Info("Marked %d of %d frames as duplicates", result.Dropped, n)
	return result, nil
}

// scoreBatch compares the frames in [start, end). Each goroutine writes only
// the decision and pair slots of its own batch.
func (s *Stage) scoreBatch(ctx context.Context, input pipeline.FilterInput, start, end int, decisions []pipeline.FrameDecision, pairs []*pipeline.SimilarityScore) error {
	limit := end
	if input.ScoreBatchBoundaries && end < len(input.Frames) {
		limit = end + 1
	}

	for i := start; i+1 < limit; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		left, right := input.Frames[i], input.Frames[i+1]
		value, err := s.scorer.Score(ctx, left.Path, right.Path)
		s.metrics.PairScored(value, err)

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.logger.Warn("Could not compare frame %d with frame %d: %v", i, i+1, err)
			pairs[i] = &pipeline.SimilarityScore{Left: i, Right: i + 1, Err: err}
			continue
		}

		pairs[i] = &pipeline.SimilarityScore{Left: i, Right: i + 1, Value: value}
		decisions[i].Score = &value
		if value > input.Threshold {
			decisions[i].Keep = false
			s.logger.Debug("Frame %d duplicates frame %d (score %.4f)", i, i+1, value)
		}
	}
	return nil
}

// Delete removes the files of dropped frames in frame order and returns
// the number of deleted files and failures.
func (s *Stage) Delete(ctx context.Context, frames []pipeline.Frame, decisions []pipeline.FrameDecision) (deleted, failed int) {
	for _, d := range decisions {
		if d.Keep {
			continue
		}
		if ctx.Err() != nil {
			// Remaining files stay; the workspace is discarded anyway.
			return deleted, failed
		}
		path := frames[d.FrameIndex].Path
		if err := s.fs.Remove(path); err != nil {
			s.logger.Warn("Could not delete %s: %v", path, err)
			s.metrics.DeleteFailed()
			failed++
			continue
		}
		deleted++
	}
	return deleted, failed
}
