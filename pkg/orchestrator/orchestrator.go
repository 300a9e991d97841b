// Package orchestrator coordinates all pipeline stages of a job.
package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/framefix/pkg/pipeline"
	"github.com/user/framefix/pkg/ports"
	"github.com/user/framefix/pkg/stages/extract"
)

// ErrNoFrames is returned when the input video decoded to zero frames.
var ErrNoFrames = extract.ErrNoFrames

const (
	// DefaultFrameRate is used when neither the config nor the input file gives one.
	DefaultFrameRate = 30.0

	// OutputSuffix is appended to the input base name.
	OutputSuffix = "_processed"

	maxDebugThumbnails = 200
)

// Config contains all configuration for one job.
type Config struct {
	// Input / output
	InputPath       string
	OutputPath      string // Overrides OutputDir when set
	OutputDir       string // Default: current directory
	OutputExtension string // Container extension without dot (default: mp4)

	// Duplicate detection
	BatchSize            int
	Threshold            float64
	ScoreBatchBoundaries bool

	// Encoding
	FrameRate     float64 // 0 = probe input, falling back to DefaultFrameRate
	Preset        string
	CRF           int
	EncodeThreads int

	// DryRun scores frames and reports decisions without deleting or encoding.
	DryRun bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	filter := pipeline.DefaultFilterInput()
	encode := ports.DefaultEncodeOptions()
	return Config{
		OutputExtension: "mp4",
		BatchSize:       filter.BatchSize,
		Threshold:       filter.Threshold,
		Preset:          encode.Preset,
	}
}

// FilterStage scores frames and can delete the dropped ones afterwards.
type FilterStage interface {
	pipeline.Stage[pipeline.FilterInput, pipeline.FilterResult]
	Delete(ctx context.Context, frames []pipeline.Frame, decisions []pipeline.FrameDecision) (deleted, failed int)
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult]
	filterStage  FilterStage
	compactStage pipeline.Stage[pipeline.CompactInput, pipeline.CompactResult]
	encodeStage  pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	prober       ports.VideoProber
	fs           ports.FileSystem
	sink         ports.DebugSink
	renderer     ports.Renderer
	metrics      ports.MetricsRecorder
	logger       ports.Logger
	stateHook    func(JobState)
}

// New creates a new Orchestrator.
func New(
	extractStage pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult],
	filterStage FilterStage,
	compactStage pipeline.Stage[pipeline.CompactInput, pipeline.CompactResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	prober ports.VideoProber,
	fs ports.FileSystem,
	sink ports.DebugSink,
	renderer ports.Renderer,
	metrics ports.MetricsRecorder,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		extractStage: pipeline.Named("decode", extractStage),
		filterStage:  filterStage,
		compactStage: pipeline.Named("compact", compactStage),
		encodeStage:  pipeline.Named("encode", encodeStage),
		prober:       prober,
		fs:           fs,
		sink:         sink,
		renderer:     renderer,
		metrics:      metrics,
		logger:       logger.WithComponent("orchestrator"),
	}
}

// WithStateHook registers a function called on every state transition.
func (o *Orchestrator) WithStateHook(hook func(JobState)) *Orchestrator {
	o.stateHook = hook
	return o
}

// OutputPathFor returns <dir>/<input base name>_processed.<ext>.
func OutputPathFor(inputPath, dir, ext string) string {
	if ext == "" {
		ext = "mp4"
	}
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+OutputSuffix+"."+strings.TrimPrefix(ext, "."))
}

// job tracks the mutable state of one Run.
type job struct {
	result RunResult
	stage  string
	start  time.Time
}

// Run executes the complete pipeline. The workspace is released on every
// path; on failure no output file is left behind.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	j := &job{result: RunResult{
		JobID:        uuid.NewString(),
		InputPath:    config.InputPath,
		OutputFrames: -1,
		DryRun:       config.DryRun,
		Durations:    make(map[string]time.Duration),
		FinalState:   StateCreated,
	}}
	if config.OutputPath != "" {
		j.result.OutputPath = config.OutputPath
	} else {
		j.result.OutputPath = OutputPathFor(config.InputPath, config.OutputDir, config.OutputExtension)
	}
	o.logger.Info("Starting job %s for %s", j.result.JobID, config.InputPath)

	// 1. Decode and collect
	o.transition(j, StateExtracting)
	o.begin(j, "decode")
	extracted, err := o.extractStage.Execute(ctx, pipeline.ExtractInput{InputPath: config.InputPath})
	if err != nil {
		return o.fail(j, err)
	}
	o.end(j, nil)
	defer func() {
		if err := extracted.Workspace.Release(); err != nil {
			o.logger.Warn("Could not remove workspace %s: %v", extracted.Workspace.Dir(), err)
		}
	}()
	j.result.InputFrames = len(extracted.Frames)
	o.logger.Debug("Job %s workspace: %s", j.result.JobID, extracted.Workspace.Dir())

	// 2. Score
	o.transition(j, StateScoring)
	o.begin(j, "score")
	filter, err := o.filterStage.Execute(ctx, o.buildFilterInput(config, extracted.Frames))
	if err != nil {
		return o.fail(j, fmt.Errorf("score stage: %w", err))
	}
	o.end(j, nil)
	j.result.DroppedFrames = filter.Dropped
	j.result.KeptFrames = len(extracted.Frames) - filter.Dropped
	j.result.ComparisonErrors = filter.ComparisonErrors()
	for _, d := range filter.Decisions {
		if !d.Keep {
			j.result.DroppedIndices = append(j.result.DroppedIndices, d.FrameIndex)
		}
	}

	// Debug output needs the dropped files, so it runs before deletion.
	if o.sink.Enabled() {
		o.saveDebugOutput(extracted.Frames, filter, config)
	}

	if config.DryRun {
		o.logger.Info("Dry run: %d of %d frames would be dropped", filter.Dropped, len(extracted.Frames))
		j.result.OutputPath = ""
		return o.finish(j), nil
	}

	// 3. Delete and compact
	o.transition(j, StateFiltering)
	o.begin(j, "filter")
	_, j.result.DeleteErrors = o.filterStage.Delete(ctx, extracted.Frames, filter.Decisions)
	if err := ctx.Err(); err != nil {
		return o.fail(j, fmt.Errorf("filter stage: %w", err))
	}
	compacted, err := o.compactStage.Execute(ctx, pipeline.CompactInput{
		Dir:       extracted.Workspace.Dir(),
		Frames:    extracted.Frames,
		Decisions: filter.Decisions,
	})
	if err != nil {
		return o.fail(j, err)
	}
	o.end(j, nil)

	// 4. Encode
	o.transition(j, StateEncoding)
	o.begin(j, "encode")
	j.result.FrameRate = o.resolveFrameRate(config)
	encoded, err := o.encodeStage.Execute(ctx, o.buildEncodeInput(config, compacted, j.result))
	if err != nil {
		return o.fail(j, err)
	}
	o.end(j, nil)
	j.result.OutputPath = encoded.OutputPath
	j.result.OutputSize = encoded.FileSize

	if info, err := o.prober.Probe(encoded.OutputPath); err == nil {
		j.result.OutputFrames = info.SampleCount
	} else {
		o.logger.Debug("Could not probe %s: %v", encoded.OutputPath, err)
	}

	o.logger.Info("Wrote %s: %d of %d frames kept", encoded.OutputPath, j.result.KeptFrames, j.result.InputFrames)
	return o.finish(j), nil
}

func (o *Orchestrator) transition(j *job, state JobState) {
	j.result.FinalState = state
	o.logger.Debug("Job %s is %s", j.result.JobID, state)
	if o.stateHook != nil {
		o.stateHook(state)
	}
}

func (o *Orchestrator) begin(j *job, stage string) {
	j.stage = stage
	j.start = time.Now()
}

func (o *Orchestrator) end(j *job, err error) {
	d := time.Since(j.start)
	j.result.Durations[j.stage] = d
	o.metrics.StageCompleted(j.stage, d, err)
}

func (o *Orchestrator) finish(j *job) RunResult {
	o.transition(j, StateDone)
	o.metrics.JobFinished(StateDone.String())
	return j.result
}

func (o *Orchestrator) fail(j *job, err error) (RunResult, error) {
	o.end(j, err)
	j.result.Err = err
	j.result.OutputPath = ""
	o.logger.Error("Job %s failed: %v", j.result.JobID, err)
	o.transition(j, StateFailed)
	o.metrics.JobFinished(StateFailed.String())
	return j.result, err
}

func (o *Orchestrator) buildFilterInput(config Config, frames []pipeline.Frame) pipeline.FilterInput {
	input := pipeline.DefaultFilterInput()
	input.Frames = frames
	if config.BatchSize > 0 {
		input.BatchSize = config.BatchSize
	}
	if config.Threshold > 0 {
		input.Threshold = config.Threshold
	}
	input.ScoreBatchBoundaries = config.ScoreBatchBoundaries
	input.Apply = false
	return input
}

func (o *Orchestrator) buildEncodeInput(config Config, compacted pipeline.CompactResult, result RunResult) pipeline.EncodeInput {
	opts := ports.DefaultEncodeOptions()
	opts.Pattern = compacted.Pattern
	opts.StartNumber = compacted.StartNumber
	opts.FrameRate = result.FrameRate
	if config.Preset != "" {
		opts.Preset = config.Preset
	}
	opts.CRF = config.CRF
	opts.Threads = config.EncodeThreads

	return pipeline.EncodeInput{
		FramesDir:  compacted.Dir,
		Pattern:    compacted.Pattern,
		OutputPath: result.OutputPath,
		Options:    opts,
	}
}

// resolveFrameRate prefers the configured rate, then the rate recorded in
// the input container.
func (o *Orchestrator) resolveFrameRate(config Config) float64 {
	if config.FrameRate > 0 {
		return config.FrameRate
	}
	info, err := o.prober.Probe(config.InputPath)
	if err != nil || info.FrameRate <= 0 {
		o.logger.Debug("Frame rate of %s unknown, using %.0f fps", config.InputPath, DefaultFrameRate)
		return DefaultFrameRate
	}
	o.logger.Debug("Input frame rate is %.3f fps", info.FrameRate)
	return info.FrameRate
}

// decisionRecord is one row of decisions.json.
type decisionRecord struct {
	Frame int      `json:"frame"`
	Path  string   `json:"path"`
	Keep  bool     `json:"keep"`
	Score *float64 `json:"score,omitempty"`
	Error string   `json:"error,omitempty"`
}

func (o *Orchestrator) saveDebugOutput(frames []pipeline.Frame, filter pipeline.FilterResult, config Config) {
	errs := make(map[int]string)
	for _, s := range filter.Scores {
		if s.Err != nil {
			errs[s.Left] = s.Err.Error()
		}
	}
	records := make([]decisionRecord, len(filter.Decisions))
	for i, d := range filter.Decisions {
		records[i] = decisionRecord{
			Frame: d.FrameIndex,
			Path:  frames[d.FrameIndex].Path,
			Keep:  d.Keep,
			Score: d.Score,
			Error: errs[d.FrameIndex],
		}
	}
	if data, err := json.MarshalIndent(records, "", "  "); err == nil {
		if err := o.sink.SaveDecisionsJSON(data); err != nil {
			o.logger.Warn("Could not save debug output: %v", err)
		}
	}

	threshold := config.Threshold
	if threshold <= 0 {
		threshold = pipeline.DefaultFilterInput().Threshold
	}
	chart := renderScoreChart(o.renderer, len(frames), filter, threshold)
	if err := o.sink.SaveScoreChart(chart); err != nil {
		o.logger.Warn("Could not save debug output: %v", err)
	}

	saved := 0
	for _, d := range filter.Decisions {
		if d.Keep {
			continue
		}
		if saved == maxDebugThumbnails {
			o.logger.Debug("Skipping thumbnails after %d dropped frames", maxDebugThumbnails)
			break
		}
		img, err := o.loadImage(frames[d.FrameIndex].Path)
		if err != nil {
			o.logger.Warn("Could not save debug output: %v", err)
			continue
		}
		if err := o.sink.SaveDroppedFrame(d.FrameIndex, img); err != nil {
			o.logger.Warn("Could not save debug output: %v", err)
			continue
		}
		saved++
	}
}

func (o *Orchestrator) loadImage(path string) (image.Image, error) {
	data, err := o.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// RunResult contains the results of a job for summary generation.
type RunResult struct {
	JobID      string
	InputPath  string
	OutputPath string // Empty on failure and in dry runs
	DryRun     bool

	// Frame counts
	InputFrames      int
	KeptFrames       int
	DroppedFrames    int
	DroppedIndices   []int // 0-based, ascending
	ComparisonErrors int
	DeleteErrors     int
	OutputFrames     int // Samples in the written video, -1 if unknown

	// Video information
	FrameRate  float64
	OutputSize int64

	// Durations per stage: decode, score, filter, encode
	Durations map[string]time.Duration

	FinalState JobState
	Err        error
}

// TotalDuration returns the sum of all stage durations.
func (r RunResult) TotalDuration() time.Duration {
	var total time.Duration
	for _, d := range r.Durations {
		total += d
	}
	return total
}
