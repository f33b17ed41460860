// SPDX-License-Identifier: MIT

// Package backend: accelerated Compute implementation.
//
// The accelerated device keeps the gonum implementations for the delicate
// factorizations (SVD, inverse) and replaces the similarity-block workhorse
// MulTrans with a blocked, goroutine-parallel kernel. It is gated on AVX2:
// without wide vector units the blocked kernel loses to gonum's BLAS and
// the device reports ErrAccelUnavailable instead of running slower.
package backend

import (
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"
	"gonum.org/v1/gonum/mat"
)

// accelBlock is the row-block size handed to one worker goroutine.
const accelBlock = 256

// accelSupported reports whether the accelerated kernels can run here.
func accelSupported() bool {
	return runtime.GOARCH == "amd64" && cpu.X86.HasAVX2
}

// accelCompute overrides the product kernels of cpuCompute.
type accelCompute struct {
	cpuCompute
}

// Device reports DeviceAccel.
func (a *accelCompute) Device() Device { return DeviceAccel }

// MulTrans returns x·yᵀ, computed in parallel row blocks. Inputs that are
// not *mat.Dense fall back to the reference implementation.
func (a *accelCompute) MulTrans(x, y mat.Matrix) *mat.Dense {
	xd, okX := x.(*mat.Dense)
	yd, okY := y.(*mat.Dense)
	if !okX || !okY {
		return a.cpuCompute.MulTrans(x, y)
	}

	xr, xc := xd.Dims()
	yr, yc := yd.Dims()
	if xc != yc {
		// Let gonum produce its canonical shape panic.
		return a.cpuCompute.MulTrans(x, y)
	}

	dst := mat.NewDense(xr, yr, nil)
	workers := runtime.GOMAXPROCS(0)
	blocks := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	var w int
	for w = 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for lo := range blocks {
				hi := lo + accelBlock
				if hi > xr {
					hi = xr
				}
				mulTransBlock(dst, xd, yd, lo, hi, yr, xc)
			}
		}()
	}
	for lo := 0; lo < xr; lo += accelBlock {
		blocks <- lo
	}
	close(blocks)
	wg.Wait()

	return dst
}

// mulTransBlock fills dst rows [lo,hi) with x[lo:hi]·yᵀ using unrolled dot
// products over the raw row storage.
func mulTransBlock(dst, x, y *mat.Dense, lo, hi, yr, d int) {
	var i, j int
	for i = lo; i < hi; i++ {
		xi := x.RawRowView(i)
		out := dst.RawRowView(i)
		for j = 0; j < yr; j++ {
			out[j] = dotUnrolled(xi, y.RawRowView(j), d)
		}
	}
}

// dotUnrolled computes the dot product with 4-way accumulators, which the
// compiler vectorizes on AVX2-class hardware.
func dotUnrolled(a, b []float64, n int) float64 {
	var s0, s1, s2, s3 float64
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	for ; i < n; i++ {
		s0 += a[i] * b[i]
	}

	return s0 + s1 + s2 + s3
}
