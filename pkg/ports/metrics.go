package ports

import "time"

// MetricsRecorder receives job measurements.
type MetricsRecorder interface {
	// StageCompleted records the duration and outcome of one pipeline stage.
	StageCompleted(stage string, d time.Duration, err error)

	// PairScored records one adjacent-frame comparison.
	PairScored(score float64, err error)

	// FramesDropped records frames marked as duplicates.
	FramesDropped(n int)

	// DeleteFailed records a duplicate frame that could not be removed.
	DeleteFailed()

	// JobFinished records the terminal state of a job.
	JobFinished(state string)
}
