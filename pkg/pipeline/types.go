package pipeline

import (
	"github.com/user/framefix/pkg/ports"
)

// =============================================================================
// Frame Data Model
// =============================================================================

// Frame is one still image of a decoded video.
type Frame struct {
	Index  int    // 0-based position in the ordered sequence
	Path   string // Absolute path of the image file
	Number int    // Numeric suffix parsed from the file name, -1 if none
	Width  int    // 0 until the image has been decoded
	Height int
}

// SimilarityScore is the result of comparing two adjacent frames.
type SimilarityScore struct {
	Left  int     // Index of the earlier frame
	Right int     // Index of the later frame
	Value float64 // 0.0 when Err is set
	Err   error
}

// FrameDecision records whether a frame survives deduplication.
type FrameDecision struct {
	FrameIndex int
	Keep       bool
	Score      *float64 // Score against the successor, nil if never compared forward
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput contains parameters for splitting a video into frames.
type ExtractInput struct {
	InputPath string
}

// ExtractResult contains the decoded frames and the workspace that holds them.
// The caller owns Workspace and must release it.
type ExtractResult struct {
	Workspace ports.Workspace
	Frames    []Frame
}

// =============================================================================
// Dedupe Stage Types
// =============================================================================

// FilterInput contains parameters for duplicate detection.
type FilterInput struct {
	Frames               []Frame
	BatchSize            int     // Frames per batch (default: 10)
	Threshold            float64 // Scores strictly above this drop the earlier frame (default: 0.95)
	ScoreBatchBoundaries bool    // Also compare the last frame of a batch with the first of the next
	Apply                bool    // Delete dropped frame files
}

// DefaultFilterInput returns FilterInput with default values.
func DefaultFilterInput() FilterInput {
	return FilterInput{
		BatchSize: 10,
		Threshold: 0.95,
		Apply:     true,
	}
}

// FilterResult contains the per-frame decisions.
type FilterResult struct {
	Decisions    []FrameDecision // One per input frame, in frame order
	Scores       []SimilarityScore
	Dropped      int
	DeleteErrors int
}

// ComparisonErrors returns the number of pairs that could not be compared.
func (r FilterResult) ComparisonErrors() int {
	n := 0
	for _, s := range r.Scores {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// =============================================================================
// Compact Stage Types
// =============================================================================

// CompactInput contains parameters for renumbering surviving frames.
type CompactInput struct {
	Dir       string
	Frames    []Frame
	Decisions []FrameDecision
	Pattern   string // printf pattern without extension (default: frame_%04d)
}

// CompactResult describes the renumbered frame sequence.
type CompactResult struct {
	Dir         string  // Directory holding the renumbered sequence
	Frames      []Frame // Surviving frames with their new paths
	StartNumber int
	Pattern     string // Full pattern including extension, e.g. frame_%04d.png
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for re-assembling frames.
type EncodeInput struct {
	FramesDir  string
	Pattern    string
	OutputPath string
	Options    ports.EncodeOptions
}

// EncodeResult describes the written video.
type EncodeResult struct {
	OutputPath string
	FileSize   int64
}
