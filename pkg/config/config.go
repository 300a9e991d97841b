// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/user/framefix/pkg/orchestrator"
	"github.com/user/framefix/pkg/ports"
)

// EnvPrefix is the prefix of every environment variable read by ApplyEnv.
const EnvPrefix = "FRAMEFIX_"

// Metric names accepted by Config.Metric.
const (
	MetricPixel  = "pixel"
	MetricFFmpeg = "ffmpeg"
)

// Log formats accepted by Config.LogFormat.
const (
	LogFormatConsole    = "console"
	LogFormatStructured = "structured"
)

// QualityPreset names a CRF level for the output video.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// CRF returns the x264 CRF value for the preset (0 for an empty preset,
// which leaves the encoder default).
func (q QualityPreset) CRF() int {
	switch q {
	case QualityLow:
		return 28
	case QualityMedium:
		return 23
	case QualityHigh:
		return 18
	default:
		return 0
	}
}

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config represents the full configuration for framefix.
type Config struct {
	// Input/Output
	Output          string `yaml:"output" env:"OUTPUT"`
	OutputDir       string `yaml:"output_dir" env:"OUTPUT_DIR"`
	OutputExtension string `yaml:"output_extension" env:"OUTPUT_EXTENSION"`

	// Duplicate detection
	Threshold            float64 `yaml:"threshold" env:"THRESHOLD"`
	BatchSize            int     `yaml:"batch_size" env:"BATCH_SIZE"`
	ScoreBatchBoundaries bool    `yaml:"score_batch_boundaries" env:"SCORE_BATCH_BOUNDARIES"`
	Metric               string  `yaml:"metric" env:"METRIC"`
	Workers              int     `yaml:"workers" env:"WORKERS"`

	// Encoding
	FPS     float64       `yaml:"fps" env:"FPS"`
	Preset  string        `yaml:"preset" env:"PRESET"`
	Quality QualityPreset `yaml:"quality" env:"QUALITY"`
	CRF     int           `yaml:"crf" env:"CRF"`

	// External tool
	FFmpegPath    string `yaml:"ffmpeg" env:"FFMPEG"`
	FFmpegArchive string `yaml:"ffmpeg_archive" env:"FFMPEG_ARCHIVE"`
	TempDir       string `yaml:"temp_dir" env:"TEMP_DIR"`

	DryRun bool `yaml:"dry_run" env:"DRY_RUN"`

	// Reports
	Summary     string `yaml:"summary" env:"SUMMARY"`
	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`

	// Logging
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	// Debug
	Debug    bool   `yaml:"debug" env:"DEBUG"`
	DebugDir string `yaml:"debug_dir" env:"DEBUG_DIR"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	orch := orchestrator.DefaultConfig()
	return Config{
		OutputExtension: orch.OutputExtension,

		Threshold: orch.Threshold,
		BatchSize: orch.BatchSize,
		Metric:    MetricPixel,

		Preset: ports.DefaultEncodeOptions().Preset,

		LogLevel:  "info",
		LogFormat: LogFormatConsole,

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overlays FRAMEFIX_* variables from the process environment.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(nil)
}

// applyEnv reads variables from environ when it is non-nil.
func (c *Config) applyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Threshold <= 0 || c.Threshold > 1:
		return fmt.Errorf("%w: threshold %v must be in (0, 1]", ErrInvalidConfig, c.Threshold)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch size %d must be at least 1", ErrInvalidConfig, c.BatchSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfig, c.Workers)
	case c.FPS < 0:
		return fmt.Errorf("%w: fps %v must not be negative", ErrInvalidConfig, c.FPS)
	case c.CRF < 0 || c.CRF > 51:
		return fmt.Errorf("%w: crf %d must be in [0, 51]", ErrInvalidConfig, c.CRF)
	}

	switch c.Metric {
	case MetricPixel, MetricFFmpeg:
	default:
		return fmt.Errorf("%w: metric %q (want %s or %s)", ErrInvalidConfig, c.Metric, MetricPixel, MetricFFmpeg)
	}

	switch c.Quality {
	case "", QualityLow, QualityMedium, QualityHigh:
	default:
		return fmt.Errorf("%w: quality %q (want low, medium or high)", ErrInvalidConfig, c.Quality)
	}

	switch strings.ToLower(c.LogFormat) {
	case LogFormatConsole, LogFormatStructured:
	default:
		return fmt.Errorf("%w: log format %q (want %s or %s)", ErrInvalidConfig, c.LogFormat, LogFormatConsole, LogFormatStructured)
	}

	return nil
}

// EffectiveCRF returns CRF when set, else the CRF of the quality preset.
func (c Config) EffectiveCRF() int {
	if c.CRF > 0 {
		return c.CRF
	}
	return c.Quality.CRF()
}

// ToOrchestratorConfig converts Config to orchestrator.Config for one input.
func (c Config) ToOrchestratorConfig(inputPath string) orchestrator.Config {
	return orchestrator.Config{
		InputPath:       inputPath,
		OutputPath:      c.Output,
		OutputDir:       c.OutputDir,
		OutputExtension: c.OutputExtension,

		BatchSize:            c.BatchSize,
		Threshold:            c.Threshold,
		ScoreBatchBoundaries: c.ScoreBatchBoundaries,

		FrameRate: c.FPS,
		Preset:    c.Preset,
		CRF:       c.EffectiveCRF(),

		DryRun: c.DryRun,
	}
}
