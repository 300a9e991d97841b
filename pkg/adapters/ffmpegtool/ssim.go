package ffmpegtool

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/user/framefix/pkg/ports"
)

var ssimAllPattern = regexp.MustCompile(`All:\s*([0-9]*\.?[0-9]+)`)

// SSIMScorer implements ports.Scorer with ffmpeg's windowed ssim filter.
type SSIMScorer struct {
	tool *Tool
}

var _ ports.Scorer = (*SSIMScorer)(nil)

// NewSSIMScorer creates a scorer that runs through tool.
func NewSSIMScorer(tool *Tool) *SSIMScorer {
	return &SSIMScorer{tool: tool}
}

// Score runs the ssim filter over the two images and returns the overall value.
func (s *SSIMScorer) Score(ctx context.Context, pathA, pathB string) (float64, error) {
	stderr, err := s.tool.run(ctx, SSIMArgs(pathA, pathB)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, err
	}
	return ParseSSIM(stderr)
}

// SSIMArgs builds the ffmpeg arguments for comparing two images.
func SSIMArgs(pathA, pathB string) []string {
	return []string{
		"-hide_banner",
		"-nostats",
		"-i", pathA,
		"-i", pathB,
		"-filter_complex", "ssim",
		"-f", "null",
		"-",
	}
}

// ParseSSIM extracts the overall score from ssim filter output,
// e.g. "SSIM Y:0.98 (17.2) U:0.99 (20.1) V:0.99 (20.3) All:0.978 (16.6)".
func ParseSSIM(output string) (float64, error) {
	m := ssimAllPattern.FindStringSubmatch(output)
	if m == nil {
		return 0, ErrSSIMUnavailable
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSSIMUnavailable, err)
	}
	return v, nil
}
