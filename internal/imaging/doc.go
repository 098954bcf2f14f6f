// Package imaging provides the image plumbing around the maxima analysis.
//
// It loads and caches images from disk, checks and enforces the grayscale
// precondition, binarizes images into foreground/background masks, crops
// regions of interest, and renders result overlays. All operations work with
// standard Go image.Image types.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Libraries
//
// Grayscale conversion and thresholding use github.com/anthonynsimon/bild,
// inversion and cropping use github.com/disintegration/imaging, marker colors
// come from github.com/lucasb-eyer/go-colorful and labels are drawn with the
// golang.org/x/image basicfont face.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The remaining functions are
// stateless and never modify their input images.
package imaging
