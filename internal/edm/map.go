package edm

import (
	"fmt"
	"image"
	"math"
)

// Map is a 2-D field of non-negative distances stored row-major.
//
// A Map is not safe for concurrent mutation; analyses only read it.
type Map struct {
	Width, Height int
	Pix           []float64
}

// New returns a zero-valued Map of the given size.
func New(width, height int) *Map {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Map{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// FromValues builds a Map from rows of values, rows[y][x].
// The input is copied. Returns ErrEmptyField, ErrNonRectangular or
// ErrInvalidValue for malformed input.
func FromValues(rows [][]float64) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyField
	}
	h, w := len(rows), len(rows[0])
	m := New(w, h)
	for y, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for x, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %v at (%d,%d)", ErrInvalidValue, v, x, y)
			}
			m.Pix[y*w+x] = v
		}
	}
	return m, nil
}

// Offset maps (x,y) to its row-major index.
func (m *Map) Offset(x, y int) int {
	return y*m.Width + x
}

// Coordinate converts a row-major index back to (x,y).
func (m *Map) Coordinate(offset int) (x, y int) {
	return offset % m.Width, offset / m.Width
}

// InBounds reports whether (x,y) lies inside the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the value at (x,y). It panics if (x,y) is out of bounds.
func (m *Map) At(x, y int) float64 {
	return m.Pix[m.Offset(x, y)]
}

// Set stores v at (x,y).
func (m *Map) Set(x, y int, v float64) {
	m.Pix[m.Offset(x, y)] = v
}

// Empty reports whether the map has no pixels.
func (m *Map) Empty() bool {
	return m == nil || m.Width == 0 || m.Height == 0
}

// MinMax returns the smallest and largest value in the map.
// Both are 0 for an empty map.
func (m *Map) MinMax() (lo, hi float64) {
	if m.Empty() {
		return 0, 0
	}
	lo, hi = m.Pix[0], m.Pix[0]
	for _, v := range m.Pix[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Foreground returns the number of pixels with a positive value.
func (m *Map) Foreground() int {
	n := 0
	for _, v := range m.Pix {
		if v > 0 {
			n++
		}
	}
	return n
}

// ToGray renders the map as an 8-bit image, scaling the maximum value to 255.
// An all-zero map renders black.
func (m *Map) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	_, hi := m.MinMax()
	if hi <= 0 {
		return img
	}
	scale := 255 / hi
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			img.Pix[img.PixOffset(x, y)] = uint8(math.Round(m.At(x, y) * scale))
		}
	}
	return img
}
