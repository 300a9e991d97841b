// Package metrics records job measurements with Prometheus collectors.
// A job runs once per process, so the collected values are exported as a
// node-exporter textfile rather than served over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/user/framefix/pkg/ports"
)

// Recorder implements ports.MetricsRecorder on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	pairsScored   prometheus.Counter
	pairErrors    prometheus.Counter
	pairScore     prometheus.Histogram
	framesDropped prometheus.Counter
	deleteErrors  prometheus.Counter
	jobsFinished  *prometheus.CounterVec
}

var _ ports.MetricsRecorder = (*Recorder)(nil)

// New creates a Recorder with all framefix collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "framefix_stage_duration_seconds",
			Help:    "Duration of each pipeline stage",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"stage"}),
		stageErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "framefix_stage_errors_total",
			Help: "Number of failed pipeline stages",
		}, []string{"stage"}),
		pairsScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "framefix_pairs_scored_total",
			Help: "Number of adjacent frame pairs compared",
		}),
		pairErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "framefix_pair_errors_total",
			Help: "Number of frame pairs that could not be compared",
		}),
		pairScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "framefix_pair_score",
			Help:    "Similarity score of compared frame pairs",
			Buckets: []float64{0.5, 0.8, 0.9, 0.95, 0.98, 0.99, 0.999, 1},
		}),
		framesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "framefix_frames_dropped_total",
			Help: "Number of frames marked as duplicates",
		}),
		deleteErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "framefix_delete_errors_total",
			Help: "Number of duplicate frames that could not be deleted",
		}),
		jobsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "framefix_jobs_total",
			Help: "Number of finished jobs, by final state",
		}, []string{"state"}),
	}
}

func (r *Recorder) StageCompleted(stage string, d time.Duration, err error) {
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		r.stageErrors.WithLabelValues(stage).Inc()
	}
}

func (r *Recorder) PairScored(score float64, err error) {
	r.pairsScored.Inc()
	if err != nil {
		r.pairErrors.Inc()
		return
	}
	r.pairScore.Observe(score)
}

func (r *Recorder) FramesDropped(n int) {
	r.framesDropped.Add(float64(n))
}

func (r *Recorder) DeleteFailed() {
	r.deleteErrors.Inc()
}

func (r *Recorder) JobFinished(state string) {
	r.jobsFinished.WithLabelValues(state).Inc()
}

// Gatherer exposes the registry, e.g. for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all collected metrics in the text exposition format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Nop discards all measurements.
type Nop struct{}

var _ ports.MetricsRecorder = Nop{}

func (Nop) StageCompleted(stage string, d time.Duration, err error) {}
func (Nop) PairScored(score float64, err error)                     {}
func (Nop) FramesDropped(n int)                                     {}
func (Nop) DeleteFailed()                                           {}
func (Nop) JobFinished(state string)                                {}
