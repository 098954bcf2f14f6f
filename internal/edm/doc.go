// Package edm computes and holds Euclidean distance maps (EDMs).
//
// An EDM assigns every foreground pixel of a binary mask its straight-line
// distance to the nearest background pixel. Background pixels hold 0. The map
// is the input of the ultimate-eroded-points analysis in package maxima, but it
// is a plain value container and can be built from any source via FromValues.
//
// # Layout
//
// Map stores values row-major in Pix: the value of pixel (x, y) lives at
// Pix[y*Width+x]. X is the column (0 = leftmost), Y is the row (0 = topmost).
//
// # Algorithm
//
// Compute uses the separable lower-envelope transform of Felzenszwalb and
// Huttenlocher: one 1-D squared-distance pass down every column, then one pass
// along every row over the column results, then a square root. The result is
// exact, not a chamfer approximation, and runs in O(W×H) time.
//
// Compute does not treat pixels outside the image as background. A mask with
// no background pixel at all has no finite distances, and Compute returns an
// all-zero map for it. ComputeFramed surrounds the mask with background
// instead, so objects cut by the image border peak inside the image.
package edm
