// SPDX-License-Identifier: MIT

// Package backend: sentinel error set. All backend failures are reported
// through these sentinels and matched via errors.Is; no backend call panics
// on user-triggered conditions.
package backend

import "errors"

var (
	// ErrAccelUnavailable is returned by New(DeviceAccel) when the host lacks
	// the CPU features the accelerated kernels require.
	ErrAccelUnavailable = errors.New("backend: accelerated device unavailable on this host")

	// ErrUnknownDevice signals a Device value outside the declared set.
	ErrUnknownDevice = errors.New("backend: unknown device")

	// ErrSVDFailed signals that the singular value decomposition did not
	// converge for the given input.
	ErrSVDFailed = errors.New("backend: SVD failed to converge")

	// ErrSingular is returned by Inverse for singular or severely
	// ill-conditioned input. Adequate conditioning of dictionary-selected
	// rows is the caller's responsibility; this error is fatal by design.
	ErrSingular = errors.New("backend: singular matrix")

	// ErrUnknownPrecision signals a precision tag outside {fp16, fp32, fp64}.
	ErrUnknownPrecision = errors.New("backend: unknown precision")
)
