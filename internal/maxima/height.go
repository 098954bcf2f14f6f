package maxima

import (
	"math"

	"github.com/ironsheep/maxima-mcp/internal/edm"
)

// TrueHeight estimates the height of the continuous distance field at pixel
// (x,y), refining the sampled value f.At(x,y).
//
// For each of the four axes through the pixel (0°/180°, 45°/225°, 90°/270°,
// 135°/315°) an estimate is formed: if the pixel is at least as high as both
// neighbors on the axis it sits on a ridge, and the estimate is the mean of
// the pair; otherwise it is the lower neighbor. The step to the neighbor (1 on
// orthogonal axes, √2 on diagonals) is added. The result is the smallest
// estimate, capped at value+√2/2.
//
// Border pixels, background pixels and pixels that are a ridge on no axis keep
// their raw value.
func TrueHeight(f *edm.Map, x, y int) float64 {
	v := f.At(x, y)
	if x == 0 || y == 0 || x == f.Width-1 || y == f.Height-1 || v == 0 {
		return v
	}

	h := v + 0.5*math.Sqrt2
	ridge := false
	for d := 0; d < 4; d++ {
		a, b := directions[d], directions[d+4]
		v1 := f.At(x+a[0], y+a[1])
		v2 := f.At(x+b[0], y+b[1])

		var est float64
		if v >= v1 && v >= v2 {
			ridge = true
			est = (v1 + v2) / 2
		} else {
			est = math.Min(v1, v2)
		}
		if d%2 == 0 {
			est++
		} else {
			est += math.Sqrt2
		}
		if est < h {
			h = est
		}
	}
	if !ridge {
		return v
	}
	return h
}

// trueHeights evaluates TrueHeight for every pixel, row-major.
func trueHeights(f *edm.Map) []float64 {
	hs := make([]float64, len(f.Pix))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			hs[f.Offset(x, y)] = TrueHeight(f, x, y)
		}
	}
	return hs
}
