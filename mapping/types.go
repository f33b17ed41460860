// SPDX-License-Identifier: MIT

// Package mapping: policies, options, and the solver result.
package mapping

import "gonum.org/v1/gonum/mat"

// Policy selects the mapping solver.
type Policy int

const (
	// Advanced runs the whitening / rotation / re-weighting / de-whitening /
	// reduction pipeline. The default.
	Advanced Policy = iota

	// Orthogonal solves the orthogonal Procrustes problem.
	Orthogonal

	// Unconstrained solves ordinary least squares.
	Unconstrained
)

// String returns the configuration tag.
func (p Policy) String() string {
	switch p {
	case Orthogonal:
		return "orthogonal"
	case Unconstrained:
		return "unconstrained"
	default:
		return "advanced"
	}
}

// DewhitenSide selects which side's whitening transform is inverted when
// de-whitening a result matrix.
type DewhitenSide int

const (
	// DewhitenNone leaves the matrix whitened.
	DewhitenNone DewhitenSide = iota

	// DewhitenSrc inverts the source-side whitening transform.
	DewhitenSrc

	// DewhitenTrg inverts the target-side whitening transform.
	DewhitenTrg
)

// Options configures one Solve call. The zero value is the advanced
// pipeline with every optional stage disabled.
type Options struct {
	// Policy selects orthogonal, unconstrained, or the advanced pipeline.
	Policy Policy

	// Whiten enables stage 1 of the advanced pipeline.
	Whiten bool

	// SrcReweight and TrgReweight are the singular-value exponents of
	// stage 3: 0 leaves a side untouched, 1 scales fully by s.
	SrcReweight float64
	TrgReweight float64

	// SrcDewhiten and TrgDewhiten pick the whitening transform to invert
	// for each result side in stage 4. Any value other than DewhitenNone
	// requires Whiten; Solve fails before iterating otherwise.
	SrcDewhiten DewhitenSide
	TrgDewhiten DewhitenSide

	// DimReduction truncates both results to the leading k columns when
	// k > 0 (stage 5).
	DimReduction int
}

// Result carries the transformed embeddings. Row counts match the inputs;
// the column count may be reduced by stage 5.
type Result struct {
	XW *mat.Dense
	ZW *mat.Dense
}
