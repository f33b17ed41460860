// SPDX-License-Identifier: MIT

// Package mapping: the Solve entry point and its three policies.
package mapping

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
	"github.com/aitorormazabal/latent-variable-vecmap/dictionary"
)

// Solve fits the transform selected by opts.Policy over the dictionary
// rows and applies it to the full matrices. (Xw, Zw) are rebuilt from
// scratch on every call.
func Solve(bk backend.Compute, x, z *mat.Dense, dict dictionary.Dictionary, opts Options) (Result, error) {
	if opts.SrcDewhiten != DewhitenNone || opts.TrgDewhiten != DewhitenNone {
		if !opts.Whiten {
			return Result{}, ErrDewhitenRequiresWhiten
		}
	}
	if dict.Len() == 0 {
		return Result{}, ErrEmptyDictionary
	}
	if err := checkBounds(x, dict.Src); err != nil {
		return Result{}, err
	}
	if err := checkBounds(z, dict.Trg); err != nil {
		return Result{}, err
	}

	switch opts.Policy {
	case Orthogonal:
		return solveOrthogonal(bk, x, z, dict)
	case Unconstrained:
		return solveUnconstrained(bk, x, z, dict)
	default:
		return solveAdvanced(bk, x, z, dict, opts)
	}
}

// checkBounds verifies every dictionary index addresses a row of m.
func checkBounds(m *mat.Dense, idx []int) error {
	rows, _ := m.Dims()
	for _, i := range idx {
		if i < 0 || i >= rows {
			return ErrDictionaryBounds
		}
	}

	return nil
}

// selectRows copies the idx rows of m into a new dense matrix.
func selectRows(m *mat.Dense, idx []int) *mat.Dense {
	_, cols := m.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	for r, i := range idx {
		out.SetRow(r, m.RawRowView(i))
	}

	return out
}

// solveOrthogonal solves the Procrustes problem: SVD of Zd·Xdᵀ, then
// W = V·Uᵀ. Z is passed through untouched.
func solveOrthogonal(bk backend.Compute, x, z *mat.Dense, dict dictionary.Dictionary) (Result, error) {
	xd := selectRows(x, dict.Src)
	zd := selectRows(z, dict.Trg)

	u, _, vt, err := bk.SVD(bk.MatMul(zd.T(), xd), false)
	if err != nil {
		return Result{}, err
	}
	w := bk.MatMul(vt.T(), u.T())

	return Result{XW: bk.MatMul(x, w), ZW: z}, nil
}

// solveUnconstrained solves ordinary least squares via the normal
// equations. Singular XdᵀXd is surfaced, not recovered from.
func solveUnconstrained(bk backend.Compute, x, z *mat.Dense, dict dictionary.Dictionary) (Result, error) {
	xd := selectRows(x, dict.Src)
	zd := selectRows(z, dict.Trg)

	inv, err := bk.Inverse(bk.MatMul(xd.T(), xd))
	if err != nil {
		return Result{}, err
	}
	w := bk.MatMul(bk.MatMul(inv, xd.T()), zd)

	return Result{XW: bk.MatMul(x, w), ZW: z}, nil
}

// solveAdvanced runs the five-stage pipeline in fixed order.
func solveAdvanced(bk backend.Compute, x, z *mat.Dense, dict dictionary.Dictionary, opts Options) (Result, error) {
	xw := mat.DenseCopyOf(x)
	zw := mat.DenseCopyOf(z)

	// Stage 1: whitening.
	var wx1, wz1 *mat.Dense
	if opts.Whiten {
		var err error
		if wx1, err = whiteningTransform(bk, selectRows(xw, dict.Src)); err != nil {
			return Result{}, err
		}
		if wz1, err = whiteningTransform(bk, selectRows(zw, dict.Trg)); err != nil {
			return Result{}, err
		}
		xw = bk.MatMul(xw, wx1)
		zw = bk.MatMul(zw, wz1)
	}

	// Stage 2: orthogonal rotation of both sides.
	cross := bk.MatMul(selectRows(xw, dict.Src).T(), selectRows(zw, dict.Trg))
	wx2, s, wz2t, err := bk.SVD(cross, false)
	if err != nil {
		return Result{}, err
	}
	wz2 := mat.DenseCopyOf(wz2t.T())
	xw = bk.MatMul(xw, wx2)
	zw = bk.MatMul(zw, wz2)

	// Stage 3: re-weighting by s^exponent.
	scaleColumns(xw, s, opts.SrcReweight)
	scaleColumns(zw, s, opts.TrgReweight)

	// Stage 4: de-whitening. The inverse whitening transform is composed
	// with the rotation of the chosen side: w2ᵀ·w1⁻¹·w2.
	if opts.Whiten && (opts.SrcDewhiten != DewhitenNone || opts.TrgDewhiten != DewhitenNone) {
		dewhiten := func(side DewhitenSide) (*mat.Dense, error) {
			w1, w2 := wx1, wx2
			if side == DewhitenTrg {
				w1, w2 = wz1, wz2
			}
			inv, invErr := bk.Inverse(w1)
			if invErr != nil {
				return nil, invErr
			}

			return bk.MatMul(bk.MatMul(w2.T(), inv), w2), nil
		}

		if opts.SrcDewhiten != DewhitenNone {
			f, dwErr := dewhiten(opts.SrcDewhiten)
			if dwErr != nil {
				return Result{}, dwErr
			}
			xw = bk.MatMul(xw, f)
		}
		if opts.TrgDewhiten != DewhitenNone {
			f, dwErr := dewhiten(opts.TrgDewhiten)
			if dwErr != nil {
				return Result{}, dwErr
			}
			zw = bk.MatMul(zw, f)
		}
	}

	// Stage 5: dimensionality reduction to the leading k columns.
	if opts.DimReduction > 0 {
		xw = truncateCols(xw, opts.DimReduction)
		zw = truncateCols(zw, opts.DimReduction)
	}

	return Result{XW: xw, ZW: zw}, nil
}

// whiteningTransform builds W = Vᵀᵀ·diag(1/s)·Vᵀ from the thin SVD of the
// dictionary rows, so that the rows' covariance becomes the identity:
// Wᵀ·RᵀR·W = I up to precision.
func whiteningTransform(bk backend.Compute, rows *mat.Dense) (*mat.Dense, error) {
	_, s, vt, err := bk.SVD(rows, true)
	if err != nil {
		return nil, err
	}

	k := len(s)
	invS := mat.NewDiagDense(k, nil)
	for i, v := range s {
		// Zero singular values yield +Inf scale, exactly as the reference
		// arithmetic would; conditioning is the caller's responsibility.
		invS.SetDiag(i, 1/v)
	}

	return bk.MatMul(bk.MatMul(vt.T(), invS), vt), nil
}

// scaleColumns multiplies column j of m by s[j]^exp in place. exp of 0 is
// the identity and skips the pass entirely.
func scaleColumns(m *mat.Dense, s []float64, exp float64) {
	if exp == 0 {
		return
	}
	rows, cols := m.Dims()
	if cols > len(s) {
		cols = len(s)
	}
	factors := make([]float64, cols)
	for j := range factors {
		factors[j] = math.Pow(s[j], exp)
	}
	var i, j int
	for i = 0; i < rows; i++ {
		row := m.RawRowView(i)
		for j = 0; j < cols; j++ {
			row[j] *= factors[j]
		}
	}
}

// truncateCols returns the leading k columns of m as a fresh matrix.
func truncateCols(m *mat.Dense, k int) *mat.Dense {
	rows, cols := m.Dims()
	if k >= cols {
		return m
	}

	return mat.DenseCopyOf(m.Slice(0, rows, 0, k))
}
