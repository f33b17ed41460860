// Package eval: batched reference-dictionary scoring.
package eval

import (
	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/dictionary"
	"github.com/aitorormazabal/latent-variable-vecmap/similarity"
)

// DefaultBatchSize is the number of source rows scored per similarity
// block.
const DefaultBatchSize = 500

// Scores is one evaluation of (Xw, Zw) against a reference dictionary.
type Scores struct {
	Coverage   float64
	Accuracy   float64
	Similarity float64
}

// Evaluate scores the mapped embeddings against ref. batch <= 0 selects
// DefaultBatchSize. An empty reference dictionary yields zero scores.
func Evaluate(eng *similarity.Engine, xw, zw *mat.Dense, ref *dictionary.Grouped, batch int) Scores {
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	scores := Scores{Coverage: ref.Coverage()}
	sources := ref.Sources()
	if len(sources) == 0 {
		return scores
	}

	_, cols := xw.Dims()
	var correct int
	var simSum float64
	for lo := 0; lo < len(sources); lo += batch {
		hi := lo + batch
		if hi > len(sources) {
			hi = len(sources)
		}

		block := mat.NewDense(hi-lo, cols, nil)
		for r, si := range sources[lo:hi] {
			block.SetRow(r, xw.RawRowView(si))
		}
		sim := eng.Similarities(block, zw)
		nn, _ := eng.BestForward(block, zw)

		for r, si := range sources[lo:hi] {
			if ref.Contains(si, nn[r]) {
				correct++
			}
			best := similarity.Unattainable
			for _, ti := range ref.Translations(si) {
				if v := sim.At(r, ti); v > best {
					best = v
				}
			}
			simSum += best
		}
	}

	scores.Accuracy = float64(correct) / float64(len(sources))
	scores.Similarity = simSum / float64(len(sources))

	return scores
}
