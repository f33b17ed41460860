// Package lapmod solves the sparse linear assignment problem: a minimum-
// total-cost one-to-one matching between n rows and n columns, where each
// row offers costs for only a sparse subset of the columns.
//
// 🚀 What is it for?
//
//	Assignment-mode dictionary induction retrieves the k most similar
//	target words per source word, converts similarity to cost, and asks
//	for the globally optimal matching instead of independent per-row
//	arg-max decisions. With vocabularies in the hundreds of thousands the
//	cost structure must stay sparse — hence the row-compressed input.
//
// 📦 Input shape (CSR):
//
//	ii — n+1 row start offsets into cc/kk, ii[0] = 0
//	kk — column indices, sorted ascending within every row
//	cc — matching cost values
//
// 🛠 Algorithm:
//
//	Successive shortest augmenting paths with dual potentials
//	(Jonker–Volgenant style). Each free row grows an alternating tree
//	until it reaches an unassigned column, duals keep reduced costs
//	consistent, and the path is flipped. Rows whose sparse candidates are
//	all exhausted make the instance infeasible, reported as
//	ErrInfeasible rather than silently mismatched.
//
// Complexity: O(n·(E + n²)) time worst case, O(n) extra memory beyond the
// input structure — the full n×n cost matrix is never materialized.
package lapmod
