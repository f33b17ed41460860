// Package similarity computes dot-product similarity between embedding
// rows in bounded blocks, so million-row vocabularies never materialize a
// full similarity matrix.
//
// 🚀 How it works:
//
//	The Engine walks row×column blocks no larger than the configured
//	ceilings (MaxRows × MaxCols entries at a time) and folds each block
//	into a running best-so-far per row or per column:
//	  • BestForward  — for every source row, the target row of maximal
//	    similarity plus that value (row-wise arg-max)
//	  • BestBackward — for every target row, the source row of maximal
//	    similarity plus that value (column-wise arg-max)
//	  • TopK        — per source row, the k most similar target rows,
//	    column indices sorted ascending (assignment-mode candidates)
//
// Blockwise results are exactly equal to the unblocked computation for
// any ceiling; only memory use changes.
//
// ⚙️ Usage:
//
//	eng := similarity.NewEngine(bk) // default 10000×10000 ceilings
//	idx, val := eng.BestForward(xw, zw)
package similarity
