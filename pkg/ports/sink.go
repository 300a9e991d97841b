package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveDecisionsJSON saves the per-frame keep/drop decisions as JSON.
	SaveDecisionsJSON(data []byte) error

	// SaveScoreChart saves a chart of adjacent-frame scores.
	SaveScoreChart(img image.Image) error

	// SaveDroppedFrame saves a copy of a frame before it is deleted.
	SaveDroppedFrame(index int, img image.Image) error
}
