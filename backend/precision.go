// SPDX-License-Identifier: MIT

// Package backend: the runtime-selectable storage precision.
//
// Compute is always float64; Precision narrows values at the I/O boundary
// so embeddings written at fp16/fp32 round-trip exactly through their
// storage width. This keeps precision a single element-type parameter
// threaded through allocation sites instead of per-call branching.
package backend

import "github.com/x448/float16"

// Precision selects the floating-point storage width.
type Precision int

const (
	// FP64 stores full float64 values. The default.
	FP64 Precision = iota

	// FP32 quantizes stored values through float32.
	FP32

	// FP16 quantizes stored values through IEEE 754 half precision.
	FP16
)

// ParsePrecision maps the configuration tags {fp16, fp32, fp64} onto a
// Precision value.
func ParsePrecision(tag string) (Precision, error) {
	switch tag {
	case "fp16":
		return FP16, nil
	case "fp32":
		return FP32, nil
	case "", "fp64":
		return FP64, nil
	default:
		return FP64, ErrUnknownPrecision
	}
}

// String returns the configuration tag.
func (p Precision) String() string {
	switch p {
	case FP16:
		return "fp16"
	case FP32:
		return "fp32"
	default:
		return "fp64"
	}
}

// Bits reports the storage width in bits.
func (p Precision) Bits() int {
	switch p {
	case FP16:
		return 16
	case FP32:
		return 32
	default:
		return 64
	}
}

// Quantize rounds v to the nearest value representable at this precision.
// Binary16 conversion rides the float16 package, which rounds to nearest
// even and preserves NaN and infinities.
func (p Precision) Quantize(v float64) float64 {
	switch p {
	case FP16:
		return float64(float16.Fromfloat32(float32(v)).Float32())
	case FP32:
		return float64(float32(v))
	default:
		return v
	}
}
