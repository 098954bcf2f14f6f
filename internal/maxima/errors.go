package maxima

import "errors"

var (
	// ErrNotGrayscale indicates a color image was passed where a grayscale
	// foreground/background image is required.
	ErrNotGrayscale = errors.New("maxima: input image must be grayscale")
	// ErrSizeMismatch indicates the image and distance field differ in size.
	ErrSizeMismatch = errors.New("maxima: image and distance field dimensions differ")
	// ErrInvalidTolerance indicates a negative or NaN tolerance.
	ErrInvalidTolerance = errors.New("maxima: tolerance must be a non-negative number")
	// ErrRetryLimit indicates a plateau kept restarting past Options.MaxRetries.
	ErrRetryLimit = errors.New("maxima: sorting-error retry limit exceeded")
)
