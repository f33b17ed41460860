// Package train runs the self-learning loop: mapping solve → dictionary
// induction → objective update, repeated until the objective stops
// improving.
//
// 🔄 The loop:
//
//	A two-state machine, iterating → converged. Every iteration rebuilds
//	(Xw, Zw) from the current training dictionary, re-induces the
//	dictionary (when self-learning is enabled), and folds the best-match
//	similarities into a scalar objective. The loop halts once
//	objective − previous < threshold; the previous objective starts at an
//	unattainably low sentinel so the first iteration always runs. Without
//	self-learning the dictionary never changes, the objective never
//	moves, and exactly one iteration executes.
//
// 📈 Observability:
//
//	Optional per-iteration hooks: a validation evaluation, a tab-separated
//	iteration log (see IterationLog), a verbose stderr-style report, a
//	test-dictionary translation evaluation, and an OnIteration callback
//	for side effects like writing intermediate embeddings.
//
// The loop is strictly sequential; each iteration's buffers are owned by
// that iteration and replaced wholesale, never merged.
package train
