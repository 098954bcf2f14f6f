package edm

import "errors"

var (
	// ErrEmptyField indicates a field with no rows or no columns.
	ErrEmptyField = errors.New("edm: field must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("edm: all rows must have the same length")
	// ErrInvalidValue indicates a negative or NaN distance value.
	ErrInvalidValue = errors.New("edm: distance values must be finite and non-negative")
)
