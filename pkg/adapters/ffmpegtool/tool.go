// Package ffmpegtool drives the ffmpeg executable to split videos into frames
// and to assemble frames back into videos.
package ffmpegtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/user/framefix/pkg/ports"
)

// FramePattern is the file name pattern of decoded frames.
const FramePattern = "frame_%04d.png"

// Tool implements ports.MediaTool using an ffmpeg process per call.
type Tool struct {
	locator *Locator
	logger  ports.Logger
	tempDir string
}

var _ ports.MediaTool = (*Tool)(nil)

// New creates a Tool. Workspaces are created under tempDir, or the system
// temp dir when tempDir is empty.
func New(locator *Locator, logger ports.Logger, tempDir string) *Tool {
	return &Tool{
		locator: locator,
		logger:  logger.WithComponent("ffmpeg"),
		tempDir: tempDir,
	}
}

// Decode splits inputPath into frame_%04d.png images inside a new workspace.
func (t *Tool) Decode(ctx context.Context, inputPath string) (ports.Workspace, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	ws, err := NewWorkspace(t.tempDir, uuid.NewString()[:8])
	if err != nil {
		return nil, fmt.Errorf("%w: create workspace: %v", ErrDecodeFailed, err)
	}

	t.logger.Debug("Decoding %s into %s", inputPath, ws.Dir())
	if _, err := t.run(ctx, DecodeArgs(inputPath, ws.Dir())...); err != nil {
		ws.Release()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	return ws, nil
}

// Encode assembles the frames in framesDir into outputPath.
func (t *Tool) Encode(ctx context.Context, framesDir, outputPath string, opts ports.EncodeOptions) error {
	t.logger.Debug("Encoding %s into %s", framesDir, outputPath)
	if _, err := t.run(ctx, EncodeArgs(framesDir, outputPath, opts)...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	return nil
}

// run executes ffmpeg and returns its stderr.
// A non-zero exit yields an error that includes stderr.
func (t *Tool) run(ctx context.Context, args ...string) (string, error) {
	path, err := t.locator.Path()
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	t.logger.Debug("Running %s %s", path, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stderr.String(), fmt.Errorf("ffmpeg exited with status %d\nstderr: %s", exitErr.ExitCode(), tail(stderr.String(), 2048))
		}
		return stderr.String(), fmt.Errorf("failed to run ffmpeg: %w", err)
	}
	return stderr.String(), nil
}

// DecodeArgs builds the ffmpeg arguments for splitting a video into frames.
func DecodeArgs(inputPath, framesDir string) []string {
	return []string{
		"-y",
		"-threads", "0",
		"-i", inputPath,
		filepath.Join(framesDir, FramePattern),
	}
}

// EncodeArgs builds the ffmpeg arguments for assembling frames into a video.
// Zero-valued options fall back to ports.DefaultEncodeOptions.
func EncodeArgs(framesDir, outputPath string, opts ports.EncodeOptions) []string {
	def := ports.DefaultEncodeOptions()
	if opts.Pattern == "" {
		opts.Pattern = def.Pattern
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = def.FrameRate
	}
	if opts.StartNumber <= 0 {
		opts.StartNumber = def.StartNumber
	}
	if opts.Codec == "" {
		opts.Codec = def.Codec
	}
	if opts.Preset == "" {
		opts.Preset = def.Preset
	}
	if opts.PixelFormat == "" {
		opts.PixelFormat = def.PixelFormat
	}

	args := []string{
		"-y",
		"-framerate", strconv.FormatFloat(opts.FrameRate, 'f', -1, 64),
		"-start_number", strconv.Itoa(opts.StartNumber),
		"-i", filepath.Join(framesDir, opts.Pattern),
		"-c:v", opts.Codec,
		"-preset", opts.Preset,
		"-threads", strconv.Itoa(opts.Threads),
		"-pix_fmt", opts.PixelFormat,
	}
	if opts.CRF > 0 {
		args = append(args, "-crf", strconv.Itoa(opts.CRF))
	}
	return append(args, outputPath)
}

// tail keeps the last n bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
