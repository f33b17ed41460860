// Package induce re-estimates the training dictionary from the current
// mapped embeddings (Xw, Zw) — the self-learning half of the loop.
//
// 🔁 Two modes:
//
//	Nearest-neighbor — per-row arg-max through the bounded-block
//	similarity engine:
//	  • Forward  — every source row pairs with its most similar target
//	  • Backward — every target row pairs with its most similar source
//	  • Union    — both directions concatenated, duplicates preserved
//
//	Assignment — a globally optimal matching instead of independent
//	per-row maxima: the k most similar targets per source row become a
//	sparse cost structure (cost = 1 − similarity), optionally replicated
//	to allow repeated row-to-distinct-column matchings, and the lapmod
//	solver produces the minimum-cost assignment. Rows are processed in
//	chunks so the candidate retrieval stays within the block ceilings.
//
// Both modes return the new dictionary plus the per-row best-similarity
// vectors that feed the loop objective. The vectors are rebuilt from
// scratch on every call; nothing carries over between iterations.
package induce
