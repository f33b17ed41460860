// Package embedding handles word-embedding matrices on the way in and out
// of the mapping engine: the text file format, the word↔index vocabulary,
// and the pre-loop normalization actions.
//
// 📄 File format:
//
//	<word_count> <dimension>
//	<word> <v₁> <v₂> ... <v_d>
//	...
//
// Files are assumed frequency-ordered (most frequent word first), so a
// read cap keeps the N most frequent entries.
//
// 🔤 Vocabulary:
//
//	A Vocabulary is an immutable bijection between words and row indices,
//	built once from the read order and never mutated afterwards.
//
// ⚖️ Normalization:
//
//	Four actions, applied once before the training loop, in the configured
//	order:
//	  • unit       — scale every row to unit length
//	  • center     — subtract each column's mean
//	  • unitdim    — scale every column to unit length
//	  • centeremb  — subtract each row's mean
//
// Matrices are gonum *mat.Dense throughout; the configured storage
// Precision quantizes values on read and write.
package embedding
