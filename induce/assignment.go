// SPDX-License-Identifier: MIT

// Package induce: assignment-mode induction over the sparse cost
// structure.
package induce

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/lapmod"
	"github.com/aitorormazabal/latent-variable-vecmap/similarity"
)

const (
	// DefaultChunkSize bounds how many source rows retrieve candidates at a
	// time.
	DefaultChunkSize = 1000

	// DefaultCandidates is the top-k similar targets kept per source row.
	DefaultCandidates = 10
)

// AssignmentOptions configures assignment-mode induction. Zero values
// select the documented defaults.
type AssignmentOptions struct {
	// ChunkSize is the number of source rows whose candidates are retrieved
	// per pass; bounds memory together with the engine block ceilings.
	ChunkSize int

	// Candidates is the number of most-similar target columns kept per row.
	Candidates int

	// Repeats replicates the cost structure to allow 2:2, 3:3, ...
	// matchings. 1 means plain one-to-one.
	Repeats int

	// Proportion controls replica column offsetting; see Proportion.
	Proportion Proportion

	// Rank restricts matching to the top-n most frequent words of both
	// sides. 0 matches everything. The chunk loop bound and the cost-matrix
	// row count both derive from this (they are deliberately not coupled to
	// the full matrix height).
	Rank int
}

// withDefaults fills zero-valued options.
func (o AssignmentOptions) withDefaults() AssignmentOptions {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Candidates <= 0 {
		o.Candidates = DefaultCandidates
	}
	if o.Repeats <= 0 {
		o.Repeats = 1
	}

	return o
}

// Assignment induces the dictionary as a minimum-cost sparse matching:
// top-k candidate retrieval per chunk, cost = 1 − similarity, lapmod over
// the (optionally replicated) structure, replica columns folded back into
// the base range. Unlike nearest-neighbor mode, the result is a global
// optimum over the sparsified costs; infeasible candidate sets surface as
// lapmod.ErrInfeasible.
func Assignment(eng *similarity.Engine, xw, zw *mat.Dense, opts AssignmentOptions) (Result, error) {
	opts = opts.withDefaults()

	xr, _ := xw.Dims()
	zr, _ := zw.Dims()
	nRows := xr
	if zr < nRows {
		nRows = zr
	}
	if opts.Rank > 0 && opts.Rank < nRows {
		nRows = opts.Rank
	}
	k := opts.Candidates
	if k > nRows {
		k = nRows
	}

	// Candidates come from the frequency-truncated target range, so the
	// problem is square over the first nRows rows of both sides.
	_, zc := zw.Dims()
	zSub := zw.Slice(0, nRows, 0, zc).(*mat.Dense)
	_, xc := xw.Dims()

	baseCC := make([]float64, 0, nRows*k)
	baseKK := make([]int, 0, nRows*k)
	var i, j int
	for i = 0; i < nRows; i += opts.ChunkSize {
		j = i + opts.ChunkSize
		if j > nRows {
			j = nRows
		}
		chunk := xw.Slice(i, j, 0, xc).(*mat.Dense)
		cols, vals := eng.TopK(chunk, zSub, k)
		for r := range cols {
			for p, c := range cols[r] {
				baseKK = append(baseKK, c)
				baseCC = append(baseCC, 1-vals[r][p])
			}
		}
	}

	// Replicate for repeated matching. Symmetric proportions shift each
	// replica's columns into a fresh copy of the column range; 1:2 keeps
	// them in place so replicas compete for the same columns.
	n := nRows * opts.Repeats
	cc := baseCC
	kk := baseKK
	if opts.Repeats > 1 {
		cc = make([]float64, 0, len(baseCC)*opts.Repeats)
		kk = make([]int, 0, len(baseKK)*opts.Repeats)
		for rep := 0; rep < opts.Repeats; rep++ {
			cc = append(cc, baseCC...)
			offset := nRows * rep
			if opts.Proportion == OneToTwo {
				offset = 0
			}
			for _, c := range baseKK {
				kk = append(kk, c+offset)
			}
		}
	}
	ii := make([]int, n+1)
	for i = 1; i <= n; i++ {
		ii[i] = ii[i-1] + k
	}

	_, rowToCol, _, err := lapmod.Solve(n, cc, ii, kk)
	if err != nil {
		return Result{}, err
	}

	// Fold replica columns back into the base range and keep the best
	// similarity seen per source row.
	res := Result{BestForward: make([]float64, nRows)}
	for i = range res.BestForward {
		res.BestForward[i] = similarity.Unattainable
	}
	var src, trg int
	for r := 0; r < n; r++ {
		src = r % nRows
		trg = rowToCol[r] % nRows
		res.Dict.Append(src, trg)
		sim := floats.Dot(xw.RawRowView(src), zw.RawRowView(trg))
		if sim > res.BestForward[src] {
			res.BestForward[src] = sim
		}
	}

	return res, nil
}
