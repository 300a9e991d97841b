// Package summarizer provides summary generation for job results.
package summarizer

import "time"

// Summary contains all data collected during one job.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Job       JobInfo
	Input     InputInfo
	Detection DetectionInfo
	Output    OutputInfo

	// Stage durations in execution order
	Stages []StageTiming
}

// JobInfo identifies the job and its outcome.
type JobInfo struct {
	ID    string
	State string
	Error string // Empty on success
}

// InputInfo describes the source video.
type InputInfo struct {
	Path   string
	Frames int
}

// DetectionInfo contains the duplicate detection settings and outcome.
type DetectionInfo struct {
	Metric               string
	Threshold            float64
	BatchSize            int
	ScoreBatchBoundaries bool

	Kept             int
	Dropped          int
	DroppedFrames    []int // 0-based frame indices
	ComparisonErrors int
	DeleteErrors     int
}

// OutputInfo contains information about the written video.
type OutputInfo struct {
	Path      string
	Frames    int // -1 if unknown
	FrameRate float64
	FileSize  int64
	CRF       int
	DryRun    bool
}

// StageTiming is the wall time of one pipeline stage.
type StageTiming struct {
	Name     string
	Duration time.Duration
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithJob sets the job identity and final state.
func (b *Builder) WithJob(id, state string, err error) *Builder {
	b.summary.Job = JobInfo{ID: id, State: state}
	if err != nil {
		b.summary.Job.Error = err.Error()
	}
	return b
}

// WithInput sets input information.
func (b *Builder) WithInput(path string, frames int) *Builder {
	b.summary.Input = InputInfo{Path: path, Frames: frames}
	return b
}

// WithDetection sets duplicate detection information.
func (b *Builder) WithDetection(detection DetectionInfo) *Builder {
	b.summary.Detection = detection
	return b
}

// WithOutput sets output video information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// WithStage appends a stage timing. Zero durations are skipped.
func (b *Builder) WithStage(name string, d time.Duration) *Builder {
	if d > 0 {
		b.summary.Stages = append(b.summary.Stages, StageTiming{Name: name, Duration: d})
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
