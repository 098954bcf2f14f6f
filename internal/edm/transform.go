package edm

import (
	"image"
	"math"
)

// Compute returns the Euclidean distance map of mask. Non-zero pixels are
// foreground, zero pixels are background.
//
// Each foreground pixel receives the distance between its center and the
// center of the nearest background pixel, so a foreground pixel touching the
// background orthogonally gets 1 and one touching it only diagonally gets √2.
// Pixels outside the image are not background; see ComputeFramed.
//
// Complexity: O(W×H) time, O(W×H + max(W,H)) memory.
func Compute(mask *image.Gray) *Map {
	return compute(mask, 0)
}

// ComputeFramed is Compute with every pixel outside the image counted as
// background, as if mask were surrounded by a one-pixel background frame.
//
// Objects cut by the image border then get their highest distances inside
// the image instead of on the border row or column, where no maximum search
// can seed from them.
func ComputeFramed(mask *image.Gray) *Map {
	return compute(mask, 1)
}

// compute runs the transform on mask padded by pad background pixels on every
// side and returns the unpadded window.
func compute(mask *image.Gray, pad int) *Map {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	m := New(w, h)
	if w == 0 || h == 0 {
		return m
	}

	gw, gh := w+2*pad, h+2*pad
	grid := make([]float64, gw*gh)

	// Stands in for infinity. Exact in float64 and larger than any squared
	// in-grid distance, so envelope arithmetic never loses precision.
	far := float64((gw+gh)*(gw+gh)) + 1

	background := pad > 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Pix[mask.PixOffset(b.Min.X+x, b.Min.Y+y)] == 0 {
				background = true
			} else {
				grid[(y+pad)*gw+x+pad] = far
			}
		}
	}
	if !background {
		return m
	}

	n := gw
	if gh > n {
		n = gh
	}
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for x := 0; x < gw; x++ {
		for y := 0; y < gh; y++ {
			f[y] = grid[y*gw+x]
		}
		lowerEnvelope(f[:gh], d[:gh], v[:gh], z[:gh+1])
		for y := 0; y < gh; y++ {
			grid[y*gw+x] = d[y]
		}
	}

	for y := 0; y < gh; y++ {
		row := grid[y*gw : (y+1)*gw]
		copy(f[:gw], row)
		lowerEnvelope(f[:gw], d[:gw], v[:gw], z[:gw+1])
		copy(row, d[:gw])
	}

	for y := 0; y < h; y++ {
		src := grid[(y+pad)*gw+pad : (y+pad)*gw+pad+w]
		dst := m.Pix[y*w : (y+1)*w]
		for x, sq := range src {
			dst[x] = math.Sqrt(sq)
		}
	}
	return m
}

// lowerEnvelope computes the 1-D squared distance transform of f into d:
// d[q] = min over p of (q-p)² + f[p]. v and z are scratch buffers holding the
// parabola vertices and the boundaries between them; z needs len(f)+1 slots.
func lowerEnvelope(f, d []float64, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersect returns the abscissa where the parabolas rooted at q and p meet.
func intersect(f []float64, q, p int) float64 {
	fq := f[q] + float64(q*q)
	fp := f[p] + float64(p*p)
	return (fq - fp) / float64(2*q-2*p)
}
