package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image drawing for debug artefacts.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage scales an image to fit within maxWidth x maxHeight, keeping its aspect ratio.
	ResizeImage(img image.Image, maxWidth, maxHeight int) image.Image
}

// Canvas provides drawing operations for charts.
type Canvas interface {
	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawLine draws a line between two points.
	DrawLine(x1, y1, x2, y2 float64, c color.Color, width float64)

	// DrawPolyline draws connected line segments through the given points.
	DrawPolyline(points []image.Point, c color.Color, width float64)

	// DrawText draws text at the specified position.
	DrawText(text string, x, y int, style TextStyle)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
