package maxima

import (
	"sort"

	"github.com/ironsheep/maxima-mcp/internal/edm"
)

// keyRange is the integer span corrected heights are scaled into.
const keyRange = 2e9

// candidate is a local maximum awaiting plateau resolution. Candidates order
// by key, then by offset.
type candidate struct {
	key    int64 // (height - globalMin) scaled by keyRange / (globalMax - globalMin)
	offset int   // row-major pixel index
}

// findCandidates scans the interior of f for pixels that no 8-neighbor
// dominates, and returns them in ascending order.
//
// A neighbor dominates only if it is higher in both raw value and corrected
// height; requiring both keeps correction noise alone from rejecting a pixel.
// Pixels at the global minimum and pixels below opts.Threshold are skipped.
//
// Complexity: O(N) scan plus O(C log C) sort for C candidates.
func findCandidates(f *edm.Map, heights []float64, opts Options) []candidate {
	lo, hi := f.MinMax()
	if hi <= lo {
		return nil
	}
	factor := keyRange / (hi - lo)

	var cands []candidate
	for y := 1; y < f.Height-1; y++ {
		for x := 1; x < f.Width-1; x++ {
			off := f.Offset(x, y)
			v := f.Pix[off]
			if v == lo || v < opts.Threshold {
				continue
			}
			h := heights[off]
			isMax := true
			for _, d := range directions {
				n := f.Offset(x+d[0], y+d[1])
				if f.Pix[n] > v && heights[n] > h {
					isMax = false
					break
				}
			}
			if isMax {
				cands = append(cands, candidate{
					key:    int64((h - lo) * factor),
					offset: off,
				})
			}
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].key != cands[j].key {
			return cands[i].key < cands[j].key
		}
		return cands[i].offset < cands[j].offset
	})
	return cands
}
