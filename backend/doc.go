// Package backend provides the numeric compute capability used by every
// other package in the module: dense matrix products, SVD, inversion and
// arg-max / top-k reductions, behind a single Compute interface.
//
// 🚀 Why an interface?
//
//	The mapping engine is numerically heavy but structurally simple: it
//	needs a handful of large dense operations and nothing else. Modeling
//	them as one capability interface keeps every component free of any
//	ambient numeric state and lets the device be chosen once at startup:
//	  • DeviceCPU   — gonum-backed reference implementation
//	  • DeviceAccel — goroutine-parallel blocked kernels, gated on SIMD
//	    support detected via golang.org/x/sys/cpu
//
// ⚙️ Usage:
//
//	bk, err := backend.New(backend.DeviceCPU)
//	if err != nil { ... }
//	sim := bk.MulTrans(xw, zw) // xw · zwᵀ
//
// Precision (FP16/FP32/FP64) is a storage-level element type: compute is
// always float64, and Precision quantizes values at I/O boundaries so a
// written file round-trips through the requested width.
//
// Every Compute call blocks until its result is available; there is no
// cancellation and no internal shared state, so a single Compute value may
// be passed freely to all components.
package backend
