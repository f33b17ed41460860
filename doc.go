// Package vecmap maps word embeddings trained on different languages
// into a shared space — from a handful of seed translations (or none at
// all) to a full bilingual dictionary.
//
// 🚀 What is vecmap?
//
//	A self-learning embedding mapper that brings together:
//		• Mapping solvers: orthogonal, unconstrained, and a staged
//		  whitening / rotation / re-weighting / de-whitening pipeline
//		• Dictionary induction: blockwise nearest-neighbor retrieval
//		  in either direction, or their union
//		• Sparse assignment: a LAPMOD-style solver that matches words
//		  one-to-one over top-k candidate lists
//		• A convergence loop: re-map, re-induce, repeat until the mean
//		  similarity objective stops improving
//
// ✨ Why choose vecmap?
//
//   - Seed-light – bootstrap from numerals or identically spelled words
//   - Deterministic – no sampling, no random restarts, reproducible runs
//   - Fast on plain CPUs – blocked kernels, AVX2-gated parallel paths
//   - Observable – per-iteration objective, accuracy and coverage logs
//
// Under the hood, everything is organized into focused packages:
//
//	backend/    — dense linear algebra (matmul, SVD, inverse, argmax)
//	embedding/  — text I/O, vocabularies, normalization actions
//	dictionary/ — seed loading, grouped gold dictionaries, coverage
//	similarity/ — blockwise similarity retrieval (best / top-k)
//	mapping/    — the per-iteration mapping solvers
//	lapmod/     — sparse linear assignment on CSR cost matrices
//	induce/     — nearest-neighbor and assignment-based induction
//	eval/       — translation accuracy, coverage, mean similarity
//	train/      — the self-learning loop, reporting, TSV logs
//	config/     — YAML configuration mirroring the CLI surface
//	cmd/vecmap/ — the command-line entry point
//
// Quick sketch:
//
//	   X ──solve──▶ XW ─┐
//	                    ├──induce──▶ dict ──▶ next solve …
//	   Z ──solve──▶ ZW ─┘
//
//	each iteration re-fits the mapping on the induced dictionary and
//	stops when the objective gain falls below the threshold.
//
//	go get github.com/aitorormazabal/latent-variable-vecmap
package vecmap
