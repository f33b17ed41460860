// SPDX-License-Identifier: MIT

// Package mapping: sentinel error set, matched via errors.Is.
package mapping

import "errors"

var (
	// ErrDewhitenRequiresWhiten rejects a de-whitening request without
	// whitening enabled. Reported before any computation.
	ErrDewhitenRequiresWhiten = errors.New("mapping: de-whitening requires whitening first")

	// ErrEmptyDictionary signals a training dictionary with no pairs; no
	// policy can fit a transform to zero rows.
	ErrEmptyDictionary = errors.New("mapping: empty training dictionary")

	// ErrDictionaryBounds signals a dictionary pair indexing outside the
	// embedding matrices.
	ErrDictionaryBounds = errors.New("mapping: dictionary index out of range")
)
