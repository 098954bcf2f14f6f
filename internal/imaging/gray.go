package imaging

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// DefaultLevel is the binarization threshold used when none is given.
const DefaultLevel uint8 = 128

// IsGrayscale reports whether every pixel of img has equal red, green and
// blue components.
//
// *image.Gray and *image.Gray16 are accepted without a scan. Other image types
// are scanned pixel by pixel, so an RGBA PNG saved from a black-and-white mask
// still qualifies.
func IsGrayscale(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != g || g != bl {
				return false
			}
		}
	}
	return true
}

// ToGray converts img to 8-bit grayscale.
//
// A *image.Gray is returned as is. Anything else goes through bild's
// effect.Grayscale luminance conversion, whose equal-channel RGBA result is
// then packed into one byte per pixel.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	lum := effect.Grayscale(img)
	g := image.NewGray(lum.Bounds())
	draw.Draw(g, g.Bounds(), lum, lum.Bounds().Min, draw.Src)
	return g
}

// Binarize splits img into foreground (255) and background (0).
//
// Parameters:
//   - img: Source image. Color images are reduced to luminance.
//   - level: Pixels at or above level become foreground.
//   - invert: Invert the image first, so dark objects on a light background
//     become foreground.
func Binarize(img image.Image, level uint8, invert bool) *image.Gray {
	src := img
	if invert {
		src = imaging.Invert(img)
	}
	return segment.Threshold(src, level)
}
