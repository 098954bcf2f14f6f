package maxima

import (
	"fmt"
	"image"

	"github.com/ironsheep/maxima-mcp/internal/edm"
	"github.com/ironsheep/maxima-mcp/internal/imaging"
)

// Find resolves the local maxima of a distance field.
//
// Parameters:
//   - f: Distance field, 0 = background. It is not modified.
//   - opts: Analysis options; see DefaultOptions.
//
// Returns:
//   - *Result: One Maximum per resolved plateau, highest first. Empty (not an
//     error) for an empty, uniform or all-background field.
//   - error: ErrInvalidTolerance for bad options, ErrRetryLimit if a candidate
//     exceeds Options.MaxRetries restarts.
//
// Complexity: O(N log N) for N pixels.
func Find(f *edm.Map, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	res := &Result{}
	if f.Empty() {
		return res, nil
	}
	res.Width, res.Height = f.Width, f.Height

	heights := trueHeights(f)
	cands := findCandidates(f, heights, opts)

	r := newResolver(f, heights, opts)
	found, err := r.run(cands)
	if err != nil {
		return nil, err
	}
	res.Maxima = found
	res.Retries = r.retries
	res.maxArea = make([]bool, len(r.state))
	for i, st := range r.state {
		res.maxArea[i] = st.maxArea
	}
	return res, nil
}

// FindInImage computes the ultimate eroded points of a binary image.
//
// Non-zero pixels are foreground. The image must be grayscale; color input
// fails with ErrNotGrayscale before any processing. Convert or threshold it
// first (see imaging.Binarize).
//
// The distance map counts everything outside the image as background
// (edm.ComputeFramed), so an object cut by the border peaks inside the image
// and yields the same points at every tolerance as it would whole.
func FindInImage(img image.Image, opts Options) (*Result, error) {
	mask, err := grayMask(img)
	if err != nil {
		return nil, err
	}
	return Find(edm.ComputeFramed(mask), opts)
}

// FindWithField resolves maxima of an externally computed distance field,
// restricted to the foreground of img. Pixels that are background in img are
// treated as background whatever their field value.
//
// Returns ErrNotGrayscale for a color image and ErrSizeMismatch when the
// field and image dimensions differ.
func FindWithField(img image.Image, f *edm.Map, opts Options) (*Result, error) {
	mask, err := grayMask(img)
	if err != nil {
		return nil, err
	}
	b := mask.Bounds()
	if f == nil || b.Dx() != f.Width || b.Dy() != f.Height {
		w, h := 0, 0
		if f != nil {
			w, h = f.Width, f.Height
		}
		return nil, fmt.Errorf("%w: image %dx%d, field %dx%d", ErrSizeMismatch, b.Dx(), b.Dy(), w, h)
	}

	masked := edm.New(f.Width, f.Height)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if mask.Pix[mask.PixOffset(b.Min.X+x, b.Min.Y+y)] != 0 {
				masked.Set(x, y, f.At(x, y))
			}
		}
	}
	return Find(masked, opts)
}

func grayMask(img image.Image) (*image.Gray, error) {
	if img == nil || !imaging.IsGrayscale(img) {
		return nil, ErrNotGrayscale
	}
	if g, ok := img.(*image.Gray); ok {
		return g, nil
	}
	return imaging.ToGray(img), nil
}
