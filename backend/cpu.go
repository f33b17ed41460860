// SPDX-License-Identifier: MIT

// Package backend: gonum-backed reference implementation of Compute.
package backend

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// cpuCompute implements Compute on host memory via gonum/mat.
type cpuCompute struct{}

// Device reports DeviceCPU.
func (c *cpuCompute) Device() Device { return DeviceCPU }

// MatMul returns a·b.
func (c *cpuCompute) MatMul(a, b mat.Matrix) *mat.Dense {
	var dst mat.Dense
	dst.Mul(a, b)

	return &dst
}

// MulTrans returns a·bᵀ.
func (c *cpuCompute) MulTrans(a, b mat.Matrix) *mat.Dense {
	var dst mat.Dense
	dst.Mul(a, b.T())

	return &dst
}

// SVD decomposes a into u·diag(s)·vᵀ.
func (c *cpuCompute) SVD(a mat.Matrix, thin bool) (*mat.Dense, []float64, *mat.Dense, error) {
	kind := mat.SVDFull
	if thin {
		kind = mat.SVDThin
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, kind); !ok {
		return nil, nil, nil, ErrSVDFailed
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// Callers expect vᵀ, matching the u·diag(s)·vᵀ convention.
	var vt mat.Dense
	vt.CloneFrom(v.T())

	return &u, s, &vt, nil
}

// Inverse returns a⁻¹. A finite condition-number warning is tolerated (the
// result is still usable); exact singularity (infinite condition) and any
// other factorization failure map to ErrSingular.
func (c *cpuCompute) Inverse(a mat.Matrix) (*mat.Dense, error) {
	var dst mat.Dense
	if err := dst.Inverse(a); err != nil {
		cond, ok := err.(mat.Condition)
		if !ok || math.IsInf(float64(cond), 1) {
			return nil, ErrSingular
		}
	}

	return &dst, nil
}

// RowArgmax returns per-row arg-max column indices and values.
func (c *cpuCompute) RowArgmax(sim mat.Matrix) ([]int, []float64) {
	r, cols := sim.Dims()
	idx := make([]int, r)
	val := make([]float64, r)
	var i, j int
	var best, cur float64
	for i = 0; i < r; i++ {
		best = sim.At(i, 0)
		idx[i] = 0
		for j = 1; j < cols; j++ {
			if cur = sim.At(i, j); cur > best {
				best = cur
				idx[i] = j
			}
		}
		val[i] = best
	}

	return idx, val
}

// ColArgmax returns per-column arg-max row indices and values.
func (c *cpuCompute) ColArgmax(sim mat.Matrix) ([]int, []float64) {
	r, cols := sim.Dims()
	idx := make([]int, cols)
	val := make([]float64, cols)
	var i, j int
	var cur float64
	for j = 0; j < cols; j++ {
		val[j] = sim.At(0, j)
	}
	for i = 1; i < r; i++ {
		for j = 0; j < cols; j++ {
			if cur = sim.At(i, j); cur > val[j] {
				val[j] = cur
				idx[j] = i
			}
		}
	}

	return idx, val
}

// ArgTopK returns indices of the k largest entries of v via a bounded
// min-heap; O(len(v)·log k) time, O(k) extra memory.
func (c *cpuCompute) ArgTopK(v []float64, k int) []int {
	return argTopK(v, k)
}

// argTopK is shared by both Compute implementations.
func argTopK(v []float64, k int) []int {
	if k > len(v) {
		k = len(v)
	}
	if k <= 0 {
		return nil
	}

	// heap[0] holds the smallest of the current top-k.
	heap := make([]int, 0, k)
	siftDown := func(i int) {
		for {
			l, r := 2*i+1, 2*i+2
			small := i
			if l < len(heap) && v[heap[l]] < v[heap[small]] {
				small = l
			}
			if r < len(heap) && v[heap[r]] < v[heap[small]] {
				small = r
			}
			if small == i {
				return
			}
			heap[i], heap[small] = heap[small], heap[i]
			i = small
		}
	}

	var i, at int
	for i = 0; i < len(v); i++ {
		if len(heap) < k {
			heap = append(heap, i)
			for at = len(heap) - 1; at > 0 && v[heap[at]] < v[heap[(at-1)/2]]; at = (at - 1) / 2 {
				heap[at], heap[(at-1)/2] = heap[(at-1)/2], heap[at]
			}
			continue
		}
		if v[i] > v[heap[0]] {
			heap[0] = i
			siftDown(0)
		}
	}

	return heap
}
