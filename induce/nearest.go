// Package induce: nearest-neighbor induction.
package induce

import (
	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/dictionary"
	"github.com/aitorormazabal/latent-variable-vecmap/similarity"
)

// NearestNeighbor derives the new training dictionary from blockwise
// arg-max search in the configured direction(s).
func NearestNeighbor(eng *similarity.Engine, xw, zw *mat.Dense, dir Direction) Result {
	var res Result

	if dir == Forward || dir == Union {
		idx, val := eng.BestForward(xw, zw)
		res.BestForward = val
		fwd := dictionary.Dictionary{Src: indexRange(len(idx)), Trg: idx}
		res.Dict = fwd
	}
	if dir == Backward || dir == Union {
		idx, val := eng.BestBackward(xw, zw)
		res.BestBackward = val
		bwd := dictionary.Dictionary{Src: idx, Trg: indexRange(len(idx))}
		if dir == Union {
			res.Dict = res.Dict.Concat(bwd)
		} else {
			res.Dict = bwd
		}
	}

	return res
}

// indexRange returns [0, 1, ..., n).
func indexRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
