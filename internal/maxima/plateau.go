package maxima

import (
	"fmt"
	"math"

	"github.com/ironsheep/maxima-mcp/internal/edm"
)

// maxSortingError is how far above the seed a neighbor's corrected height may
// be and still be blamed on candidate ordering rather than a real higher point.
const maxSortingError = 1.1 * math.Sqrt2 / 2

// plateau is the outcome of growing one flood fill from a seed.
type plateau struct {
	seed         int
	height       float64
	maxPossible  bool
	sortingError bool
	edge         bool

	// Centroid accumulators over pixels exactly at seed height.
	sumX, sumY float64
	nEqual     int
}

// resolver carries the per-call state of plateau resolution.
type resolver struct {
	f          *edm.Map
	heights    []float64
	state      []pixelState
	list       []int // flood list, reused across plateaus
	opts       Options
	maxRetries int
	retries    int
}

func newResolver(f *edm.Map, heights []float64, opts Options) *resolver {
	n := len(f.Pix)
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = n
	}
	return &resolver{
		f:          f,
		heights:    heights,
		state:      make([]pixelState, n),
		list:       make([]int, 0, 64),
		opts:       opts,
		maxRetries: maxRetries,
	}
}

// run resolves candidates from the highest down and returns the maxima in
// that order.
func (r *resolver) run(cands []candidate) ([]Maximum, error) {
	var out []Maximum
	for i := len(cands) - 1; i >= 0; i-- {
		off := cands[i].offset
		if r.state[off].processed {
			continue // reached from a higher maximum
		}
		m, ok, err := r.resolve(off)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// resolve grows the plateau of one candidate, restarting from a higher pixel
// whenever a sorting error is found, and finalizes it.
func (r *resolver) resolve(seed int) (Maximum, bool, error) {
	p := plateau{seed: seed, height: r.heights[seed]}
	for attempt := 0; ; attempt++ {
		r.grow(&p)
		if !p.sortingError {
			break
		}
		if attempt >= r.maxRetries {
			x, y := r.f.Coordinate(seed)
			sx, sy := r.f.Coordinate(p.seed)
			return Maximum{}, false, fmt.Errorf("%w: candidate (%d,%d) stopped climbing at (%d,%d) after %d restarts",
				ErrRetryLimit, x, y, sx, sy, attempt)
		}
		for _, off := range r.list {
			r.state[off] = pixelState{}
		}
		r.retries++
	}
	return r.finalize(&p)
}

// grow floods outward from p.seed over foreground pixels whose corrected
// height lies within tolerance below the seed. p.seed and p.height move when
// a sorting error is detected so the caller can restart from the new point.
func (r *resolver) grow(p *plateau) {
	f := r.f
	tol := r.opts.Tolerance

	r.list = append(r.list[:0], p.seed)
	r.state[p.seed].listed = true
	r.state[p.seed].equal = true

	x0, y0 := f.Coordinate(p.seed)
	p.maxPossible = true
	p.sortingError = false
	p.edge = onBorder(f, x0, y0)
	p.sumX, p.sumY, p.nEqual = float64(x0), float64(y0), 1

	for i := 0; i < len(r.list); i++ {
		x, y := f.Coordinate(r.list[i])
		for _, d := range directions {
			x2, y2 := x+d[0], y+d[1]
			if !f.InBounds(x2, y2) {
				continue
			}
			off2 := f.Offset(x2, y2)
			st := &r.state[off2]
			if st.listed || f.Pix[off2] <= 0 {
				continue
			}
			if st.processed {
				p.maxPossible = false // a higher maximum already owns this pixel
				break
			}
			v2 := r.heights[off2]
			if v2 > p.height+maxSortingError {
				p.maxPossible = false // genuinely higher ground
				break
			}
			if v2 < p.height-tol {
				continue
			}
			if v2 > p.height {
				p.sortingError = true
				p.seed = off2
				p.height = v2
			}
			r.list = append(r.list, off2)
			st.listed = true
			if onBorder(f, x2, y2) && v2 >= p.height {
				p.edge = true
				if r.opts.ExcludeEdges {
					p.maxPossible = false
					break
				}
			}
			if v2 == p.height {
				st.equal = true
				p.sumX += float64(x2)
				p.sumY += float64(y2)
				p.nEqual++
			}
		}
	}
}

// finalize marks every listed pixel processed and, for a confirmed maximum,
// picks the equal-height pixel nearest the centroid of all equal-height pixels.
func (r *resolver) finalize(p *plateau) (Maximum, bool, error) {
	cx := p.sumX / float64(p.nEqual)
	cy := p.sumY / float64(p.nEqual)
	best, bestDist := p.seed, math.Inf(1)

	for _, off := range r.list {
		st := &r.state[off]
		st.listed = false
		st.processed = true
		if !p.maxPossible {
			st.equal = false
			continue
		}
		st.maxArea = true
		if st.equal {
			x, y := r.f.Coordinate(off)
			dx, dy := cx-float64(x), cy-float64(y)
			if d2 := dx*dx + dy*dy; d2 < bestDist {
				best, bestDist = off, d2
			}
		}
	}
	if !p.maxPossible {
		return Maximum{}, false, nil
	}

	x, y := r.f.Coordinate(best)
	return Maximum{
		Point:    Point{X: x, Y: y},
		Distance: r.f.Pix[best],
		Height:   p.height,
		Area:     len(r.list),
		Edge:     p.edge,
	}, true, nil
}

func onBorder(f *edm.Map, x, y int) bool {
	return x == 0 || y == 0 || x == f.Width-1 || y == f.Height-1
}
