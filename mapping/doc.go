// Package mapping solves for the linear transforms that align two
// embedding spaces over the current training dictionary.
//
// 🧭 Three mutually exclusive policies:
//
//	Orthogonal    — the Procrustes problem: SVD of Zdict·Xdictᵀ gives the
//	                rotation W = V·Uᵀ; Xw = X·W, Zw = Z. The only policy
//	                with a closed-form global optimum, and the produced W
//	                satisfies WᵀW = I to numerical precision.
//
//	Unconstrained — ordinary least squares W = (XdᵀXd)⁻¹Xdᵀ·Zd. Rank-
//	                deficient dictionary rows make this singular; the
//	                solver deliberately surfaces that as a fatal error
//	                rather than recovering.
//
//	Advanced      — a five-stage pipeline, fixed order:
//	                  1. whitening of each side (optional)
//	                  2. orthogonal rotation of both sides via the SVD of
//	                     the cross-covariance of the dictionary rows
//	                  3. per-dimension re-weighting by singular values
//	                     raised to configured exponents
//	                  4. de-whitening of either side (optional; requires
//	                     whitening — rejected up front otherwise)
//	                  5. dimensionality reduction to the leading k columns
//
// Each Solve recomputes (Xw, Zw) from scratch; no state survives between
// iterations.
package mapping
