// Package train: loop options, state, and result.
package train

import (
	"errors"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/dictionary"
	"github.com/aitorormazabal/latent-variable-vecmap/eval"
	"github.com/aitorormazabal/latent-variable-vecmap/induce"
	"github.com/aitorormazabal/latent-variable-vecmap/mapping"
)

// DefaultThreshold is the convergence threshold on objective improvement.
const DefaultThreshold = 1e-6

// ErrNoProgressGuard is returned when MaxIterations is exhausted before
// the threshold rule fires. The loop not terminating on its own is a
// documented possibility; the guard exists so callers can opt into a
// bound.
var ErrNoProgressGuard = errors.New("train: maximum iterations reached before convergence")

// State is the controller's phase.
type State int

const (
	// Iterating: the objective improved at least threshold last iteration
	// (or no iteration has completed yet).
	Iterating State = iota

	// Converged: the objective gain fell below threshold.
	Converged
)

// Options configures one training run. The zero value runs the advanced
// mapping once over a fixed dictionary with the default threshold.
type Options struct {
	// Mapping configures the per-iteration solve.
	Mapping mapping.Options

	// SelfLearning re-induces the training dictionary every iteration.
	// When false the seed dictionary stays fixed and the loop runs once.
	SelfLearning bool

	// Direction selects nearest-neighbor induction direction and the
	// objective fold.
	Direction induce.Direction

	// UseAssignment switches induction to assignment mode.
	UseAssignment bool

	// Assignment configures assignment-mode induction.
	Assignment induce.AssignmentOptions

	// Threshold is the convergence threshold; <= 0 selects
	// DefaultThreshold.
	Threshold float64

	// MaxIterations bounds the loop; 0 means unlimited, so the threshold
	// rule alone decides termination.
	MaxIterations int

	// Validation, when non-nil, is evaluated each iteration and reported
	// through the log and verbose writers.
	Validation *dictionary.Grouped

	// Test, when non-nil, triggers a full translation evaluation every
	// iteration (diagnostic; not part of the convergence rule).
	Test *dictionary.Grouped

	// EvalBatch is the evaluator batch size; <= 0 selects the default.
	EvalBatch int

	// Verbose, when non-nil, receives the per-iteration report.
	Verbose io.Writer

	// Report, when non-nil, receives the test-evaluation summary lines.
	Report io.Writer

	// Log, when non-nil, receives one TSV record per iteration.
	Log *IterationLog

	// OnIteration, when non-nil, runs at the end of every iteration with
	// that iteration's mapped embeddings (e.g. to persist intermediate
	// output). An error aborts the run.
	OnIteration func(iteration int, xw, zw *mat.Dense) error
}

// Result is the outcome of a run: the final mapped embeddings, the last
// training dictionary, and loop telemetry.
type Result struct {
	XW *mat.Dense
	ZW *mat.Dense

	// Dict is the training dictionary after the last induction (the seed
	// when self-learning was off).
	Dict dictionary.Dictionary

	// Objective is the last computed objective value.
	Objective float64

	// Iterations is the number of completed iterations.
	Iterations int

	// State reports whether the loop converged or hit the iteration guard.
	State State

	// Validation holds the last validation scores when validation was
	// configured.
	Validation *eval.Scores
}
