package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Threshold != 0.95 {
		t.Errorf("Threshold = %v, want 0.95", cfg.Threshold)
	}
	if cfg.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", cfg.BatchSize)
	}
	if cfg.Metric != MetricPixel {
		t.Errorf("Metric = %q, want %q", cfg.Metric, MetricPixel)
	}
	if cfg.Preset != "fast" {
		t.Errorf("Preset = %q, want fast", cfg.Preset)
	}
	if cfg.OutputExtension != "mp4" {
		t.Errorf("OutputExtension = %q, want mp4", cfg.OutputExtension)
	}
	if cfg.ScoreBatchBoundaries {
		t.Error("ScoreBatchBoundaries should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framefix.yaml")
	yaml := `
threshold: 0.9
batch_size: 25
score_batch_boundaries: true
metric: ffmpeg
fps: 24
quality: high
output_dir: /tmp/out
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Threshold != 0.9 || cfg.BatchSize != 25 || !cfg.ScoreBatchBoundaries {
		t.Errorf("detection settings = %v/%d/%v", cfg.Threshold, cfg.BatchSize, cfg.ScoreBatchBoundaries)
	}
	if cfg.Metric != MetricFFmpeg {
		t.Errorf("Metric = %q", cfg.Metric)
	}
	if cfg.FPS != 24 || cfg.Quality != QualityHigh || cfg.OutputDir != "/tmp/out" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.Preset != "fast" || cfg.LogFormat != LogFormatConsole {
		t.Errorf("defaults lost: preset %q, log format %q", cfg.Preset, cfg.LogFormat)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("threshold: [1, 2"), 0644)
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	cfg.BatchSize = 25

	err := cfg.applyEnv(map[string]string{
		"FRAMEFIX_THRESHOLD":  "0.99",
		"FRAMEFIX_DRY_RUN":    "true",
		"FRAMEFIX_LOG_FORMAT": "structured",
		"THRESHOLD":           "0.1",
	})
	if err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}

	if cfg.Threshold != 0.99 {
		t.Errorf("Threshold = %v, want 0.99", cfg.Threshold)
	}
	if !cfg.DryRun {
		t.Error("DryRun not applied")
	}
	if cfg.LogFormat != LogFormatStructured {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
	if cfg.BatchSize != 25 {
		t.Errorf("BatchSize = %d, unset variable overwrote file value", cfg.BatchSize)
	}
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	cfg := Defaults()
	if err := cfg.applyEnv(map[string]string{"FRAMEFIX_BATCH_SIZE": "ten"}); err == nil {
		t.Error("expected error for non-numeric batch size")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.Threshold = 0 }},
		{"threshold above one", func(c *Config) { c.Threshold = 1.5 }},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative fps", func(c *Config) { c.FPS = -30 }},
		{"crf out of range", func(c *Config) { c.CRF = 60 }},
		{"unknown metric", func(c *Config) { c.Metric = "psnr" }},
		{"unknown quality", func(c *Config) { c.Quality = "ultra" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEffectiveCRF(t *testing.T) {
	tests := []struct {
		quality QualityPreset
		crf     int
		want    int
	}{
		{"", 0, 0},
		{QualityLow, 0, 28},
		{QualityMedium, 0, 23},
		{QualityHigh, 0, 18},
		{QualityHigh, 30, 30},
	}
	for _, tt := range tests {
		cfg := Config{Quality: tt.quality, CRF: tt.crf}
		if got := cfg.EffectiveCRF(); got != tt.want {
			t.Errorf("EffectiveCRF(%q, %d) = %d, want %d", tt.quality, tt.crf, got, tt.want)
		}
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Output = "/out/fixed.mp4"
	cfg.OutputDir = "/out"
	cfg.Threshold = 0.97
	cfg.BatchSize = 12
	cfg.ScoreBatchBoundaries = true
	cfg.FPS = 50
	cfg.Quality = QualityLow
	cfg.DryRun = true

	oc := cfg.ToOrchestratorConfig("/videos/clip.mp4")

	if oc.InputPath != "/videos/clip.mp4" || oc.OutputPath != "/out/fixed.mp4" || oc.OutputDir != "/out" {
		t.Errorf("paths = %q %q %q", oc.InputPath, oc.OutputPath, oc.OutputDir)
	}
	if oc.Threshold != 0.97 || oc.BatchSize != 12 || !oc.ScoreBatchBoundaries {
		t.Errorf("detection = %v/%d/%v", oc.Threshold, oc.BatchSize, oc.ScoreBatchBoundaries)
	}
	if oc.FrameRate != 50 || oc.CRF != 28 || oc.Preset != "fast" {
		t.Errorf("encoding = %v/%d/%q", oc.FrameRate, oc.CRF, oc.Preset)
	}
	if !oc.DryRun {
		t.Error("DryRun not carried over")
	}
}
