package mocks

import (
	"image"
	"image/color"

	"github.com/user/framefix/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, maxWidth, maxHeight int) image.Image
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return &Canvas{width: width, height: height}
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, maxWidth, maxHeight int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, maxWidth, maxHeight)
	}
	return image.NewRGBA(image.Rect(0, 0, maxWidth, maxHeight))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that counts draw calls.
type Canvas struct {
	width  int
	height int

	Rects     int
	Lines     int
	Polylines int
	Texts     []string
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) { m.Rects++ }

func (m *Canvas) DrawLine(x1, y1, x2, y2 float64, c color.Color, width float64) { m.Lines++ }

func (m *Canvas) DrawPolyline(points []image.Point, c color.Color, width float64) { m.Polylines++ }

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)
