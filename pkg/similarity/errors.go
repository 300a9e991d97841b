package similarity

import "errors"

var (
	// ErrDimensionMismatch is returned when the two images differ in width or height.
	ErrDimensionMismatch = errors.New("similarity: image dimensions differ")

	// ErrEmptyImage is returned when an image has zero width or height.
	ErrEmptyImage = errors.New("similarity: image has no pixels")
)
