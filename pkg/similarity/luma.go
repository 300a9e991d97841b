package similarity

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Rec.709 luma weights scaled by 10000.
const (
	lumaR     = 2126
	lumaG     = 7152
	lumaB     = 722
	lumaScale = 10000
)

// lumaPlane is an 8-bit single channel copy of an image.
type lumaPlane struct {
	width  int
	height int
	pix    []uint8
}

func (p *lumaPlane) row(y int) []uint8 {
	return p.pix[y*p.width : (y+1)*p.width]
}

// decodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP data.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// toLuma reduces an image to 8-bit luminance.
func toLuma(img image.Image) *lumaPlane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := &lumaPlane{width: w, height: h, pix: make([]uint8, w*h)}

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(plane.pix[y*w:(y+1)*w], src.Pix[off:off+w])
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < w; x++ {
				i := off + x*4
				plane.pix[y*w+x] = luma709(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				plane.pix[y*w+x] = luma709(c.R, c.G, c.B)
			}
		}
	}
	return plane
}

// luma709 rounds to the nearest integer.
func luma709(r, g, b uint8) uint8 {
	v := (lumaR*uint32(r) + lumaG*uint32(g) + lumaB*uint32(b) + lumaScale/2) / lumaScale
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
