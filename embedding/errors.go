// Package embedding: sentinel error set, matched via errors.Is.
package embedding

import "errors"

var (
	// ErrBadHeader signals a first line that is not "<count> <dim>".
	ErrBadHeader = errors.New("embedding: malformed header line")

	// ErrBadVector signals an entry line whose value count does not match the
	// header dimension, or whose values do not parse as floats.
	ErrBadVector = errors.New("embedding: malformed vector line")

	// ErrUnknownAction signals a normalization tag outside
	// {unit, center, unitdim, centeremb}.
	ErrUnknownAction = errors.New("embedding: unknown normalization action")

	// ErrShapeMismatch signals word/matrix row-count disagreement on write.
	ErrShapeMismatch = errors.New("embedding: words and matrix rows differ")
)
