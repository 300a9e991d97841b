package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/user/framefix/pkg/ports"
)

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	img := r.CreateCanvas(100, 60, color.White).ToImage()
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 60 {
		t.Errorf("expected 100x60, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	cr, cg, cb, _ := img.At(10, 10).RGBA()
	if cr>>8 != 255 || cg>>8 != 255 || cb>>8 != 255 {
		t.Errorf("expected white background, got %d %d %d", cr>>8, cg>>8, cb>>8)
	}
}

func TestCanvas_Drawing(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(50, 50, color.White)

	canvas.DrawRect(0, 0, 10, 10, color.Black)
	canvas.DrawLine(0, 49, 49, 49, color.RGBA{R: 255, A: 255}, 2)
	canvas.DrawPolyline([]image.Point{{X: 0, Y: 25}, {X: 25, Y: 30}, {X: 49, Y: 20}}, color.RGBA{B: 255, A: 255}, 1)
	canvas.DrawText("0.95", 25, 40, ports.TextStyle{FontSize: 10, Color: color.Black, Align: ports.AlignCenter})

	img := canvas.ToImage()
	cr, cg, cb, _ := img.At(5, 5).RGBA()
	if cr != 0 || cg != 0 || cb != 0 {
		t.Errorf("expected black rectangle pixel, got %d %d %d", cr, cg, cb)
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))

	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 8 {
		t.Errorf("expected width 8, got %d", decoded.Bounds().Dx())
	}
}

func TestRenderer_EncodeJPEG(t *testing.T) {
	r := New()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))

	data, err := r.EncodeImage(img, ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("expected JPEG SOI marker")
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	r := New()

	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"landscape", 1920, 1080, 320, 320, 320, 180},
		{"portrait", 1080, 1920, 320, 320, 180, 320},
		{"already small", 100, 50, 320, 320, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := r.ResizeImage(img, tt.maxW, tt.maxH).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, got.Dx(), got.Dy())
			}
		})
	}
}
