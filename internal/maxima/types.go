package maxima

import (
	"fmt"
	"image"
	"math"
)

// NoThreshold disables threshold-based suppression of weak candidates.
const NoThreshold = -math.MaxFloat64

// DefaultTolerance is the height variation still treated as one maximum.
const DefaultTolerance = 0.5

// Point is a pixel coordinate: X is the column, Y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats p as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Maximum is one resolved local maximum of the distance map.
type Maximum struct {
	Point

	// Distance is the raw distance-map value at Point, the radius of the
	// largest inscribed disk centered there.
	Distance float64 `json:"distance"`

	// Height is the corrected height of the plateau the point represents.
	Height float64 `json:"height"`

	// Area is the number of pixels within tolerance assigned to this maximum.
	Area int `json:"area"`

	// Edge reports that the plateau reached the image border.
	Edge bool `json:"edge"`
}

// Options tunes the analysis. The zero value is not ready for use; start
// from DefaultOptions.
type Options struct {
	// Tolerance is how far below the seed height a pixel may lie and still
	// belong to the same maximum.
	Tolerance float64

	// Threshold suppresses candidates whose raw value is below it.
	// NoThreshold disables the check.
	Threshold float64

	// ExcludeEdges rejects maxima whose plateau reaches the image border at
	// or above the seed height.
	ExcludeEdges bool

	// MaxRetries caps sorting-error restarts for a single candidate. Zero
	// allows none; a negative value removes the cap.
	MaxRetries int
}

// DefaultOptions returns Tolerance=0.5, no threshold, edges included and a
// retry cap of 1000.
func DefaultOptions() Options {
	return Options{
		Tolerance:  DefaultTolerance,
		Threshold:  NoThreshold,
		MaxRetries: 1000,
	}
}

func (o Options) validate() error {
	if math.IsNaN(o.Tolerance) || o.Tolerance < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTolerance, o.Tolerance)
	}
	return nil
}

// Result holds the maxima found in one analysis.
type Result struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Maxima []Maximum `json:"maxima"`

	// Retries counts sorting-error restarts across all candidates.
	Retries int `json:"retries"`

	maxArea []bool
}

// Count returns the number of maxima.
func (r *Result) Count() int {
	return len(r.Maxima)
}

// Points returns the representative point of every maximum, highest first.
func (r *Result) Points() []Point {
	pts := make([]Point, len(r.Maxima))
	for i, m := range r.Maxima {
		pts[i] = m.Point
	}
	return pts
}

// Mask returns an image where every pixel belonging to a confirmed maximum
// plateau is 255 and all others are 0.
func (r *Result) Mask() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for i, in := range r.maxArea {
		if in {
			img.Pix[i] = 255
		}
	}
	return img
}

// pixelState tracks a pixel through plateau resolution. processed and
// maxArea are never cleared once a plateau is finalized.
type pixelState struct {
	listed    bool // in the current flood list
	equal     bool // exactly at the current seed height
	processed bool // plateau membership resolved
	maxArea   bool // member of a confirmed maximum
}

// directions lists the 8 neighbors clockwise from north. Index d and d+4 are
// opposite; even indices are orthogonal.
var directions = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}
