// Package induce: directions, options, and the induction result.
package induce

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	"github.com/aitorormazabal/latent-variable-vecmap/dictionary"
)

// Direction selects which side's arg-max drives nearest-neighbor
// induction.
type Direction int

const (
	// Forward pairs every source row with its best target row. The default.
	Forward Direction = iota

	// Backward pairs every target row with its best source row.
	Backward

	// Union concatenates both directions without deduplication.
	Union
)

// String returns the configuration tag.
func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Union:
		return "union"
	default:
		return "forward"
	}
}

// Proportion controls how replicated assignment copies compete for
// columns.
type Proportion int

const (
	// OneToOne offsets each replica's columns by rows×replica, so replicas
	// claim distinct column copies (symmetric 2:2, 3:3, ... matching).
	OneToOne Proportion = iota

	// OneToTwo keeps the original column indices in every replica, letting
	// replicas compete for the same columns (asymmetric 1:2 matching).
	OneToTwo

	// TwoToOne behaves like OneToOne on the column side; the asymmetry
	// comes from the caller swapping the matrices.
	TwoToOne
)

// String returns the configuration tag.
func (p Proportion) String() string {
	switch p {
	case OneToTwo:
		return "1:2"
	case TwoToOne:
		return "2:1"
	default:
		return "1:1"
	}
}

// ParseProportion maps the tags {1:1, 1:2, 2:1} onto a Proportion.
func ParseProportion(tag string) (Proportion, error) {
	switch tag {
	case "", "1:1":
		return OneToOne, nil
	case "1:2":
		return OneToTwo, nil
	case "2:1":
		return TwoToOne, nil
	default:
		return OneToOne, ErrUnknownProportion
	}
}

// ErrUnknownProportion signals a proportion tag outside {1:1, 1:2, 2:1}.
var ErrUnknownProportion = errors.New("induce: unknown assignment proportion")

// Result is the output of one induction step: the replacement training
// dictionary and the per-row best similarities behind it. BestForward is
// indexed by source row, BestBackward by target row; a direction that did
// not run leaves its vector nil.
type Result struct {
	Dict         dictionary.Dictionary
	BestForward  []float64
	BestBackward []float64
}

// Objective folds the best-similarity vectors into the loop's scalar
// objective: forward mean, backward mean, or the average of both for
// union.
func (r Result) Objective(dir Direction) float64 {
	switch dir {
	case Backward:
		return stat.Mean(r.BestBackward, nil)
	case Union:
		return (stat.Mean(r.BestForward, nil) + stat.Mean(r.BestBackward, nil)) / 2
	default:
		return stat.Mean(r.BestForward, nil)
	}
}
