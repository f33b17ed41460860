// SPDX-License-Identifier: MIT

// Package similarity: the bounded-block Engine.
package similarity

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
)

const (
	// DefaultBlockRows is the default source-side block ceiling.
	DefaultBlockRows = 10000

	// DefaultBlockCols is the default target-side block ceiling.
	DefaultBlockCols = 10000

	// Unattainable is the initial best-similarity sentinel: strictly below
	// any dot product of normalized embeddings, so the first block always
	// wins. It is also the objective's initial value in the training loop.
	Unattainable = -100.0
)

// Engine computes similarity blocks no larger than MaxRows×MaxCols and
// folds them into running reductions. One Engine may be reused across
// iterations; it holds no per-call state.
type Engine struct {
	bk      backend.Compute
	maxRows int
	maxCols int
}

// Option adjusts Engine construction.
type Option func(*Engine)

// WithBlockRows caps source-side block height. Panics on n <= 0
// (programmer error, matching option conventions elsewhere in the module).
func WithBlockRows(n int) Option {
	if n <= 0 {
		panic("similarity: WithBlockRows requires n > 0")
	}

	return func(e *Engine) { e.maxRows = n }
}

// WithBlockCols caps target-side block width. Panics on n <= 0.
func WithBlockCols(n int) Option {
	if n <= 0 {
		panic("similarity: WithBlockCols requires n > 0")
	}

	return func(e *Engine) { e.maxCols = n }
}

// NewEngine builds an Engine over the given backend with 10000×10000
// default ceilings.
func NewEngine(bk backend.Compute, opts ...Option) *Engine {
	e := &Engine{bk: bk, maxRows: DefaultBlockRows, maxCols: DefaultBlockCols}
	for _, o := range opts {
		o(e)
	}

	return e
}

// rowSlice returns m[lo:hi] without copying.
func rowSlice(m *mat.Dense, lo, hi int) *mat.Dense {
	_, c := m.Dims()

	return m.Slice(lo, hi, 0, c).(*mat.Dense)
}

// BestForward returns, for every row of x, the row of z with maximal dot
// product and that product's value. Identical to the unblocked arg-max for
// any block ceiling.
func (e *Engine) BestForward(x, z *mat.Dense) (idx []int, val []float64) {
	xr, _ := x.Dims()
	zr, _ := z.Dims()
	idx = make([]int, xr)
	val = make([]float64, xr)
	for i := range val {
		val[i] = Unattainable
	}

	var i, j, k, l, r int
	for i = 0; i < xr; i += e.maxRows {
		j = min(xr, i+e.maxRows)
		for k = 0; k < zr; k += e.maxCols {
			l = min(zr, k+e.maxCols)
			block := e.bk.MulTrans(rowSlice(x, i, j), rowSlice(z, k, l))
			bi, bv := e.bk.RowArgmax(block)
			for r = 0; r < j-i; r++ {
				if bv[r] > val[i+r] {
					val[i+r] = bv[r]
					idx[i+r] = bi[r] + k
				}
			}
		}
	}

	return idx, val
}

// BestBackward returns, for every row of z, the row of x with maximal dot
// product and that value (the column-wise arg-max of x·zᵀ).
func (e *Engine) BestBackward(x, z *mat.Dense) (idx []int, val []float64) {
	xr, _ := x.Dims()
	zr, _ := z.Dims()
	idx = make([]int, zr)
	val = make([]float64, zr)
	for i := range val {
		val[i] = Unattainable
	}

	var i, j, k, l, c int
	for i = 0; i < xr; i += e.maxRows {
		j = min(xr, i+e.maxRows)
		for k = 0; k < zr; k += e.maxCols {
			l = min(zr, k+e.maxCols)
			block := e.bk.MulTrans(rowSlice(x, i, j), rowSlice(z, k, l))
			bi, bv := e.bk.ColArgmax(block)
			for c = 0; c < l-k; c++ {
				if bv[c] > val[k+c] {
					val[k+c] = bv[c]
					idx[k+c] = bi[c] + i
				}
			}
		}
	}

	return idx, val
}

// TopK returns, per row of x, the k rows of z with the highest dot
// products: column indices sorted ascending with their matching values, as
// the sparse-assignment builder requires. k is clamped to rows(z).
func (e *Engine) TopK(x, z *mat.Dense, k int) (cols [][]int, vals [][]float64) {
	xr, _ := x.Dims()
	zr, _ := z.Dims()
	if k > zr {
		k = zr
	}
	cols = make([][]int, xr)
	vals = make([][]float64, xr)

	// Per-row candidate pool: the top k of every column block, merged at
	// the end. Bounded by k · ceil(zr/maxCols) entries per row.
	candIdx := make([][]int, xr)
	candVal := make([][]float64, xr)

	var i, j, kb, l, r int
	for i = 0; i < xr; i += e.maxRows {
		j = min(xr, i+e.maxRows)
		for kb = 0; kb < zr; kb += e.maxCols {
			l = min(zr, kb+e.maxCols)
			block := e.bk.MulTrans(rowSlice(x, i, j), rowSlice(z, kb, l))
			for r = 0; r < j-i; r++ {
				row := block.RawRowView(r)
				for _, c := range e.bk.ArgTopK(row, k) {
					candIdx[i+r] = append(candIdx[i+r], c+kb)
					candVal[i+r] = append(candVal[i+r], row[c])
				}
			}
		}
	}

	for r = 0; r < xr; r++ {
		keep := e.bk.ArgTopK(candVal[r], k)
		sort.Slice(keep, func(a, b int) bool { return candIdx[r][keep[a]] < candIdx[r][keep[b]] })
		cols[r] = make([]int, len(keep))
		vals[r] = make([]float64, len(keep))
		for p, c := range keep {
			cols[r][p] = candIdx[r][c]
			vals[r][p] = candVal[r][c]
		}
	}

	return cols, vals
}

// Similarities returns the full x·zᵀ block. Callers bound memory by
// batching x themselves (the evaluator's fixed-size batches do exactly
// that).
func (e *Engine) Similarities(x, z *mat.Dense) *mat.Dense {
	return e.bk.MulTrans(x, z)
}
