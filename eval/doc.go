// Package eval scores mapped embeddings against a one-to-many reference
// dictionary (validation during the loop, test at the end).
//
// Three numbers per evaluation:
//
//	Coverage   — |known source words| / (|known| + |out-of-vocabulary|);
//	             carried by the reference dictionary itself.
//	Accuracy   — fraction of known source words whose nearest target row
//	             lies in their reference translation set.
//	Similarity — mean, over known source words, of the maximum similarity
//	             among their reference translations.
//
// Nearest-neighbor lookups run in fixed-size source batches so memory
// stays bounded regardless of vocabulary size.
package eval
