// SPDX-License-Identifier: MIT

// Package backend: device selection and the Compute capability interface.
package backend

import "gonum.org/v1/gonum/mat"

// Device selects which Compute implementation New constructs.
type Device int

const (
	// DeviceCPU is the gonum-backed reference implementation. Always available.
	DeviceCPU Device = iota

	// DeviceAccel is the accelerated implementation: blocked, goroutine-parallel
	// product kernels. Requires AVX2 on amd64; New returns ErrAccelUnavailable
	// when the host cannot run it.
	DeviceAccel
)

// String returns the canonical tag used in configuration and logs.
func (d Device) String() string {
	if d == DeviceAccel {
		return "accel"
	}

	return "cpu"
}

// Compute is the full numeric capability the mapping engine requires of a
// backend. Implementations must be safe for sequential reuse across calls;
// no call retains references to its arguments.
//
// All matrices are row-major dense float64; Precision handles narrower
// storage widths at the I/O boundary (see precision.go).
type Compute interface {
	// Device reports which device this backend runs on.
	Device() Device

	// MatMul returns a·b.
	MatMul(a, b mat.Matrix) *mat.Dense

	// MulTrans returns a·bᵀ. This is the similarity-block workhorse: rows of
	// a scored against rows of b.
	MulTrans(a, b mat.Matrix) *mat.Dense

	// SVD decomposes a into u·diag(s)·vᵀ. With thin=true the decomposition is
	// economy-sized (min(r,c) columns); otherwise it is full.
	// Returns ErrSVDFailed if the factorization does not converge.
	SVD(a mat.Matrix, thin bool) (u *mat.Dense, s []float64, vt *mat.Dense, err error)

	// Inverse returns a⁻¹, or ErrSingular when a is singular or severely
	// ill-conditioned.
	Inverse(a mat.Matrix) (*mat.Dense, error)

	// RowArgmax returns, for every row of sim, the column index of the
	// maximal entry and that entry's value.
	RowArgmax(sim mat.Matrix) (idx []int, val []float64)

	// ColArgmax returns, for every column of sim, the row index of the
	// maximal entry and that entry's value.
	ColArgmax(sim mat.Matrix) (idx []int, val []float64)

	// ArgTopK returns the indices of the k largest values of v, in no
	// particular order. k is clamped to len(v).
	ArgTopK(v []float64, k int) []int
}

// New constructs the Compute implementation for the requested device.
// DeviceCPU always succeeds; DeviceAccel returns ErrAccelUnavailable when
// the required CPU features are missing.
func New(d Device) (Compute, error) {
	switch d {
	case DeviceCPU:
		return &cpuCompute{}, nil
	case DeviceAccel:
		if !accelSupported() {
			return nil, ErrAccelUnavailable
		}

		return &accelCompute{}, nil
	default:
		return nil, ErrUnknownDevice
	}
}
