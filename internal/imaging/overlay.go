package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Marker is a point to highlight on an overlay.
type Marker struct {
	X, Y  int
	Value float64 // drives the marker color when no fixed color is set
	Label string  // optional; the marker index is used when empty
}

// MarkerOptions controls how RenderMarkers draws.
type MarkerOptions struct {
	// Size is the arm length of each crosshair in pixels. Default 3.
	Size int

	// ShowLabels draws each marker's label next to it.
	ShowLabels bool

	// Color fixes every marker to one hex color ("#RRGGBB"). When empty,
	// markers are colored from blue (lowest Value) to red (highest).
	Color string
}

// OverlayResult contains an annotated image encoded as base64 PNG.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Markers     int    `json:"markers"`
}

// RenderMarkers draws a crosshair at every marker on a copy of img.
//
// Parameters:
//   - img: Background image. It is not modified.
//   - markers: Points to draw, in img's coordinate space.
//   - opts: Drawing options; the zero value gives unlabeled, value-colored
//     crosshairs of size 3.
//
// Returns:
//   - *OverlayResult: The annotated image as base64 PNG.
//   - error: Non-nil if opts.Color is not a valid hex color or encoding fails.
//
// # Coloring
//
// Marker values are normalized to [0,1] across the set and mapped onto an HSV
// hue ramp from 240° (blue) to 0° (red) at full value, so the strongest maxima
// stand out. A set with a single distinct value is drawn red.
func RenderMarkers(img image.Image, markers []Marker, opts MarkerOptions) (*OverlayResult, error) {
	if opts.Size <= 0 {
		opts.Size = 3
	}

	var fixedColor *colorful.Color
	if opts.Color != "" {
		c, err := colorful.Hex(opts.Color)
		if err != nil {
			return nil, fmt.Errorf("invalid marker color %q: %w", opts.Color, err)
		}
		fixedColor = &c
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)

	lo, hi := valueRange(markers)
	for i, m := range markers {
		var c color.Color
		if fixedColor != nil {
			c = *fixedColor
		} else {
			c = rampColor(m.Value, lo, hi)
		}
		drawCrosshair(dst, m.X, m.Y, opts.Size, c)

		if opts.ShowLabels {
			label := m.Label
			if label == "" {
				label = strconv.Itoa(i + 1)
			}
			drawText(dst, m.X+opts.Size+2, m.Y+4, label, c)
		}
	}

	encoded, err := EncodePNG(dst)
	if err != nil {
		return nil, err
	}
	return &OverlayResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		Markers:     len(markers),
	}, nil
}

func valueRange(markers []Marker) (lo, hi float64) {
	for i, m := range markers {
		if i == 0 || m.Value < lo {
			lo = m.Value
		}
		if i == 0 || m.Value > hi {
			hi = m.Value
		}
	}
	return lo, hi
}

// rampColor maps v in [lo,hi] onto the blue-to-red hue ramp.
func rampColor(v, lo, hi float64) colorful.Color {
	t := 1.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	return colorful.Hsv(240*(1-t), 1, 1).Clamped()
}

func drawCrosshair(img *image.RGBA, x, y, size int, c color.Color) {
	b := img.Bounds()
	for d := -size; d <= size; d++ {
		if p := image.Pt(x+d, y); p.In(b) {
			img.Set(p.X, p.Y, c)
		}
		if p := image.Pt(x, y+d); p.In(b) {
			img.Set(p.X, p.Y, c)
		}
	}
}

// drawText writes s with its baseline at (x,y) using the 7x13 bitmap face.
func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
