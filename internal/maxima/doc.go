// Package maxima finds the ultimate eroded points (UEPs) of a binary image:
// one representative pixel per local maximum of its Euclidean distance map.
//
// # Pipeline
//
// Analysis runs in three sequential stages:
//
//  1. Distance transform: the binary mask is turned into an edm.Map, or the
//     caller supplies one (FindWithField, Find).
//  2. Candidate detection: every interior, non-background pixel that no
//     8-neighbor dominates in both raw distance and corrected height becomes
//     a candidate. Candidates are sorted by corrected height, ties by offset.
//  3. Plateau resolution: candidates are taken from the highest down. Each one
//     seeds a flood fill over neighbors within Options.Tolerance of its height.
//     A plateau that reaches an already resolved pixel, or a pixel clearly
//     higher than the seed, is not a maximum. Otherwise the pixel nearest the
//     centroid of the exactly-equal-height pixels is reported.
//
// # Corrected height
//
// Sampling a continuous distance field on a pixel grid produces spurious ties
// along ridges. TrueHeight estimates the ridge height between samples and is
// used for ordering and tie-breaking; raw values are still reported.
//
// # Sorting errors
//
// The corrected height is not monotonic in the raw value, so a flood fill can
// meet a pixel slightly higher than its seed that has not been handled yet.
// The attempt is then discarded and restarted from that pixel. Restarts are
// silent; Result.Retries counts them and Options.MaxRetries bounds them.
//
// # Coordinates
//
// Points are reported as X = column, Y = row, origin at the top-left pixel.
//
// # Concurrency
//
// Every call allocates its own state. Concurrent calls are safe as long as
// they do not share a mutable edm.Map.
package maxima
