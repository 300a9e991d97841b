package main

import (
	"github.com/user/framefix/pkg/config"
	"github.com/user/framefix/pkg/orchestrator"
	"github.com/user/framefix/pkg/summarizer"
)

// stageOrder lists the stages in the order they appear in the report.
var stageOrder = []string{"decode", "score", "filter", "encode"}

// buildSummary converts a job result into a report.
func buildSummary(result orchestrator.RunResult, cfg config.Config) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithJob(result.JobID, result.FinalState.String(), result.Err).
		WithInput(result.InputPath, result.InputFrames).
		WithDetection(summarizer.DetectionInfo{
			Metric:               cfg.Metric,
			Threshold:            cfg.Threshold,
			BatchSize:            cfg.BatchSize,
			ScoreBatchBoundaries: cfg.ScoreBatchBoundaries,
			Kept:                 result.KeptFrames,
			Dropped:              result.DroppedFrames,
			DroppedFrames:        result.DroppedIndices,
			ComparisonErrors:     result.ComparisonErrors,
			DeleteErrors:         result.DeleteErrors,
		}).
		WithOutput(summarizer.OutputInfo{
			Path:      result.OutputPath,
			Frames:    result.OutputFrames,
			FrameRate: result.FrameRate,
			FileSize:  result.OutputSize,
			CRF:       cfg.EffectiveCRF(),
			DryRun:    result.DryRun,
		})
	for _, stage := range stageOrder {
		b.WithStage(stage, result.Durations[stage])
	}
	return b.Build()
}
