// Package main provides the CLI entry point for framefix.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/user/framefix/pkg/adapters/ffmpegtool"
	"github.com/user/framefix/pkg/adapters/filesink"
	"github.com/user/framefix/pkg/adapters/ggrenderer"
	"github.com/user/framefix/pkg/adapters/logger"
	"github.com/user/framefix/pkg/adapters/mp4probe"
	"github.com/user/framefix/pkg/adapters/nullsink"
	"github.com/user/framefix/pkg/adapters/osfilesystem"
	"github.com/user/framefix/pkg/config"
	"github.com/user/framefix/pkg/frameset"
	"github.com/user/framefix/pkg/metrics"
	"github.com/user/framefix/pkg/orchestrator"
	"github.com/user/framefix/pkg/ports"
	"github.com/user/framefix/pkg/similarity"
	"github.com/user/framefix/pkg/stages/compact"
	"github.com/user/framefix/pkg/stages/dedupe"
	"github.com/user/framefix/pkg/stages/encode"
	"github.com/user/framefix/pkg/stages/extract"
	"github.com/user/framefix/pkg/summarizer"
)

var version = "dev"

var errMissingInput = errors.New("an input video is required")

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.Run(args); err != nil {
		fmt.Fprintln(stderr, l10n.F("Error: %v", err))
		return 1
	}
	return 0
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "framefix",
		Usage:           l10n.T("Remove stuck and duplicated frames from a video"),
		UsageText:       "framefix [options] <input-video>",
		Version:         version,
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Flags:           flags(),
		Action: func(c *cli.Context) error {
			return action(c, stdout, stderr)
		},
	}
}

func flags() []cli.Flag {
	const (
		catOutput    = "Output"
		catDetection = "Duplicate Detection"
		catEncoding  = "Video Encoding"
		catTool      = "ffmpeg"
		catReports   = "Reports and Debug"
		catLogging   = "Logging"
	)
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: l10n.T(catOutput)},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output video path (default: <input>_processed.mp4)"), Category: l10n.T(catOutput)},
		&cli.StringFlag{Name: "output-dir", Usage: l10n.T("Directory for the output video (default: current directory)"), Category: l10n.T(catOutput)},
		&cli.BoolFlag{Name: "dry-run", Usage: l10n.T("Score frames and report without deleting or encoding"), Category: l10n.T(catOutput)},

		&cli.Float64Flag{Name: "threshold", Usage: l10n.T("Similarity above which the earlier frame is dropped"), Value: 0.95, Category: l10n.T(catDetection)},
		&cli.IntFlag{Name: "batch-size", Usage: l10n.T("Frames per comparison batch"), Value: 10, Category: l10n.T(catDetection)},
		&cli.BoolFlag{Name: "score-batch-boundaries", Usage: l10n.T("Also compare the last frame of each batch with the next one"), Category: l10n.T(catDetection)},
		&cli.StringFlag{Name: "metric", Usage: l10n.T("Similarity metric (pixel, ffmpeg)"), Value: config.MetricPixel, Category: l10n.T(catDetection)},
		&cli.IntFlag{Name: "workers", Usage: l10n.T("Parallel workers (0 = number of CPUs)"), Category: l10n.T(catDetection)},

		&cli.Float64Flag{Name: "fps", Usage: l10n.T("Output frame rate (0 = read from input, falling back to 30)"), Category: l10n.T(catEncoding)},
		&cli.StringFlag{Name: "preset", Usage: l10n.T("x264 preset"), Value: "fast", Category: l10n.T(catEncoding)},
		&cli.StringFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("Quality preset (low, medium, high)"), Category: l10n.T(catEncoding)},
		&cli.IntFlag{Name: "crf", Usage: l10n.T("x264 CRF value (0-51, overrides quality preset)"), Category: l10n.T(catEncoding)},

		&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to the ffmpeg executable"), Category: l10n.T(catTool)},
		&cli.StringFlag{Name: "ffmpeg-archive", Usage: l10n.T("zstd-compressed ffmpeg executable to unpack"), Category: l10n.T(catTool)},
		&cli.StringFlag{Name: "temp-dir", Usage: l10n.T("Parent directory for frame workspaces"), Category: l10n.T(catTool)},

		&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a Markdown summary to this file"), Category: l10n.T(catReports)},
		&cli.StringFlag{Name: "metrics-file", Usage: l10n.T("Write Prometheus metrics to this file"), Category: l10n.T(catReports)},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output"), Category: l10n.T(catReports)},
		&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output"), Value: "./debug", Category: l10n.T(catReports)},

		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)"), Value: "info", Category: l10n.T(catLogging)},
		&cli.StringFlag{Name: "log-format", Usage: l10n.T("Log format (console, structured)"), Value: config.LogFormatConsole, Category: l10n.T(catLogging)},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T(catLogging)},
	}
}

func action(c *cli.Context, stdout, stderr io.Writer) error {
	if c.NArg() != 1 {
		c.App.Writer = stderr
		cli.ShowAppHelp(c)
		return errMissingInput
	}
	input := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := newLogger(cfg, c.Bool("quiet"), stderr)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Resolving ffmpeg is the only fatal startup condition.
	locator := ffmpegtool.NewLocator(cfg.FFmpegPath, cfg.FFmpegArchive)
	ffmpegPath, err := locator.Path()
	if err != nil {
		return err
	}
	log.Debug("Using ffmpeg at %s", ffmpegPath)

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	tool := ffmpegtool.New(locator, log, cfg.TempDir)

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	var recorder ports.MetricsRecorder = metrics.Nop{}
	var prom *metrics.Recorder
	if cfg.MetricsFile != "" {
		prom = metrics.New()
		recorder = prom
	}

	var scorer ports.Scorer
	switch cfg.Metric {
	case config.MetricFFmpeg:
		scorer = ffmpegtool.NewSSIMScorer(tool)
	default:
		scorer = similarity.NewPixelScorer(fs, cfg.Workers)
	}

	// Create stages
	extractStage := extract.NewStage(tool, frameset.NewCollector(cfg.Workers), log)
	dedupeStage := dedupe.NewStage(scorer, fs, recorder, log, cfg.Workers)
	compactStage := compact.NewStage(fs, log)
	encodeStage := encode.NewStage(tool, fs, log)

	orch := orchestrator.New(
		extractStage,
		dedupeStage,
		compactStage,
		encodeStage,
		mp4probe.New(),
		fs,
		sink,
		renderer,
		recorder,
		log,
	)

	result, runErr := orch.Run(ctx, cfg.ToOrchestratorConfig(input))

	if cfg.Summary != "" {
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), fs)
		if err := writer.Write(cfg.Summary, buildSummary(result, cfg)); err != nil {
			log.Warn("Could not write summary: %v", err)
		} else {
			log.Info("Summary saved to %s", cfg.Summary)
		}
	}
	if prom != nil {
		if err := prom.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("Could not write metrics: %v", err)
		} else {
			log.Info("Metrics saved to %s", cfg.MetricsFile)
		}
	}

	if runErr != nil {
		return runErr
	}
	if result.OutputPath != "" {
		fmt.Fprintln(stdout, result.OutputPath)
	}
	return nil
}

// loadConfig layers defaults, the YAML file, FRAMEFIX_* variables and
// explicitly set flags, in that order.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	applyFlags(c, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("dry-run") {
		cfg.DryRun = c.Bool("dry-run")
	}
	if c.IsSet("threshold") {
		cfg.Threshold = c.Float64("threshold")
	}
	if c.IsSet("batch-size") {
		cfg.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("score-batch-boundaries") {
		cfg.ScoreBatchBoundaries = c.Bool("score-batch-boundaries")
	}
	if c.IsSet("metric") {
		cfg.Metric = c.String("metric")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.IsSet("preset") {
		cfg.Preset = c.String("preset")
	}
	if c.IsSet("quality") {
		cfg.Quality = config.QualityPreset(c.String("quality"))
	}
	if c.IsSet("crf") {
		cfg.CRF = c.Int("crf")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("ffmpeg-archive") {
		cfg.FFmpegArchive = c.String("ffmpeg-archive")
	}
	if c.IsSet("temp-dir") {
		cfg.TempDir = c.String("temp-dir")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
}

// newLogger picks the logger for the configured format. Log lines always go
// to stderr; stdout carries only the output path.
func newLogger(cfg config.Config, quiet bool, stderr io.Writer) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(cfg.LogLevel)
	f, isFile := stderr.(*os.File)
	if cfg.LogFormat == config.LogFormatStructured {
		noColor := !isFile || !isatty.IsTerminal(f.Fd())
		return logger.NewStructured(stderr, level, noColor)
	}
	if isFile && f == os.Stderr {
		return logger.NewConsole(level)
	}
	return logger.NewConsoleWriters(level, stderr, stderr)
}
