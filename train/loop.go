// SPDX-License-Identifier: MIT

// Package train: the iteration controller.
package train

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
	"github.com/aitorormazabal/latent-variable-vecmap/dictionary"
	"github.com/aitorormazabal/latent-variable-vecmap/eval"
	"github.com/aitorormazabal/latent-variable-vecmap/induce"
	"github.com/aitorormazabal/latent-variable-vecmap/mapping"
	"github.com/aitorormazabal/latent-variable-vecmap/similarity"
)

// Run executes the mapping / induction loop until convergence: it stops
// once the objective gain drops below the threshold, with the previous
// objective seeded at an unattainably low sentinel so the first iteration
// always runs. Without self-learning the objective never moves and exactly
// one solve happens.
func Run(bk backend.Compute, eng *similarity.Engine, x, z *mat.Dense,
	seed dictionary.Dictionary, opts Options) (Result, error) {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	res := Result{State: Iterating, Dict: seed}
	dict := seed
	prev := similarity.Unattainable
	objective := similarity.Unattainable

	for it := 1; it == 1 || objective-prev >= threshold; it++ {
		if opts.MaxIterations > 0 && it > opts.MaxIterations {
			res.Objective = objective

			return res, ErrNoProgressGuard
		}
		start := time.Now()

		solved, err := mapping.Solve(bk, x, z, dict, opts.Mapping)
		if err != nil {
			return Result{}, err
		}
		res.XW, res.ZW = solved.XW, solved.ZW

		if opts.SelfLearning {
			var ind induce.Result
			// Assignment matching is inherently source-to-target, so its
			// objective always folds forward; Direction only shapes
			// nearest-neighbor induction.
			fold := opts.Direction
			if opts.UseAssignment {
				if ind, err = induce.Assignment(eng, solved.XW, solved.ZW, opts.Assignment); err != nil {
					return Result{}, err
				}
				fold = induce.Forward
			} else {
				ind = induce.NearestNeighbor(eng, solved.XW, solved.ZW, opts.Direction)
			}
			dict = ind.Dict
			prev = objective
			objective = ind.Objective(fold)

			var val *eval.Scores
			if opts.Validation != nil {
				s := eval.Evaluate(eng, solved.XW, solved.ZW, opts.Validation, opts.EvalBatch)
				val = &s
				res.Validation = val
			}

			seconds := time.Since(start).Seconds()
			if opts.Verbose != nil {
				reportIteration(opts, it, seconds, objective, val)
			}
			if opts.Log != nil {
				if err = opts.Log.Append(it, objective, val, seconds); err != nil {
					return Result{}, err
				}
			}
		}

		if opts.OnIteration != nil {
			if err = opts.OnIteration(it, solved.XW, solved.ZW); err != nil {
				return Result{}, err
			}
		}
		if opts.Test != nil {
			s := eval.Evaluate(eng, solved.XW, solved.ZW, opts.Test, opts.EvalBatch)
			if opts.Report != nil {
				fmt.Fprintln(opts.Report, "Evaluating translation...")
				fmt.Fprintf(opts.Report, "Coverage:%7.2f%%  Accuracy:%7.2f%%\n",
					100*s.Coverage, 100*s.Accuracy)
			}
		}

		res.Iterations = it
		res.Dict = dict
	}

	res.State = Converged
	res.Objective = objective

	return res, nil
}

// reportIteration writes the verbose per-iteration block.
func reportIteration(opts Options, it int, seconds, objective float64, val *eval.Scores) {
	fmt.Fprintln(opts.Verbose)
	fmt.Fprintf(opts.Verbose, "ITERATION %d (%.2fs)\n", it, seconds)
	fmt.Fprintf(opts.Verbose, "\t- Objective:        %9.4f%%\n", 100*objective)
	if val != nil {
		fmt.Fprintf(opts.Verbose, "\t- Val. similarity:  %9.4f%%\n", 100*val.Similarity)
		fmt.Fprintf(opts.Verbose, "\t- Val. accuracy:    %9.4f%%\n", 100*val.Accuracy)
		fmt.Fprintf(opts.Verbose, "\t- Val. coverage:    %9.4f%%\n", 100*val.Coverage)
	}
}
