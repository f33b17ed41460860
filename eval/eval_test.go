// Package eval_test contains unit tests for coverage, accuracy and
// average-similarity scoring.
package eval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
	"github.com/aitorormazabal/latent-variable-vecmap/dictionary"
	"github.com/aitorormazabal/latent-variable-vecmap/embedding"
	"github.com/aitorormazabal/latent-variable-vecmap/eval"
	"github.com/aitorormazabal/latent-variable-vecmap/similarity"
)

func engine(t *testing.T) *similarity.Engine {
	t.Helper()
	bk, err := backend.New(backend.DeviceCPU)
	require.NoError(t, err)

	return similarity.NewEngine(bk)
}

func grouped(t *testing.T, lines string, src, trg *embedding.Vocabulary) *dictionary.Grouped {
	t.Helper()
	g, err := dictionary.LoadGrouped(strings.NewReader(lines), src, trg)
	require.NoError(t, err)

	return g
}

// TestEvaluatePerfect: identity-aligned embeddings score accuracy 1 and
// similarity 1 against the identity reference.
func TestEvaluatePerfect(t *testing.T) {
	src := embedding.NewVocabulary([]string{"a", "b", "c"})
	trg := embedding.NewVocabulary([]string{"x", "y", "z"})
	g := grouped(t, "a x\nb y\nc z\n", src, trg)

	xw := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	zw := mat.DenseCopyOf(xw)

	s := eval.Evaluate(engine(t), xw, zw, g, 0)
	require.InDelta(t, 1.0, s.Coverage, 1e-12)
	require.InDelta(t, 1.0, s.Accuracy, 1e-12)
	require.InDelta(t, 1.0, s.Similarity, 1e-12)
}

// TestEvaluateMixed: one of two known words translated correctly, and the
// similarity average reflects the reference-set maxima.
func TestEvaluateMixed(t *testing.T) {
	src := embedding.NewVocabulary([]string{"a", "b"})
	trg := embedding.NewVocabulary([]string{"x", "y"})
	g := grouped(t, "a x\nb y\n", src, trg)

	// Row a points at x (correct); row b also points at x (wrong).
	xw := mat.NewDense(2, 2, []float64{1, 0, 0.9, 0.1})
	zw := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	s := eval.Evaluate(engine(t), xw, zw, g, 0)
	require.InDelta(t, 1.0, s.Coverage, 1e-12)
	require.InDelta(t, 0.5, s.Accuracy, 1e-12)
	// max-sim within refs: a→x = 1.0, b→y = 0.1.
	require.InDelta(t, 0.55, s.Similarity, 1e-12)
}

// TestEvaluateCoverage: OOV entries lower coverage but never abort.
func TestEvaluateCoverage(t *testing.T) {
	src := embedding.NewVocabulary([]string{"a", "b"})
	trg := embedding.NewVocabulary([]string{"x", "y"})
	g := grouped(t, "a x\nghost y\n", src, trg)

	xw := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	zw := mat.DenseCopyOf(xw)

	s := eval.Evaluate(engine(t), xw, zw, g, 0)
	require.InDelta(t, 0.5, s.Coverage, 1e-12)
	require.InDelta(t, 1.0, s.Accuracy, 1e-12)
}

// TestEvaluateBatching: tiny batch sizes leave the scores unchanged.
func TestEvaluateBatching(t *testing.T) {
	src := embedding.NewVocabulary([]string{"a", "b", "c", "d", "e"})
	trg := embedding.NewVocabulary([]string{"v", "w", "x", "y", "z"})
	g := grouped(t, "a v\nb w\nc x\nd y\ne z\n", src, trg)

	xw := mat.NewDense(5, 5, nil)
	for i := 0; i < 5; i++ {
		xw.Set(i, i, 1)
	}
	zw := mat.DenseCopyOf(xw)

	want := eval.Evaluate(engine(t), xw, zw, g, 0)
	for _, batch := range []int{1, 2, 3, 5, 100} {
		got := eval.Evaluate(engine(t), xw, zw, g, batch)
		require.Equal(t, want, got, "batch %d", batch)
	}
}

// TestEvaluateEmptyReference returns zero scores without panicking.
func TestEvaluateEmptyReference(t *testing.T) {
	src := embedding.NewVocabulary([]string{"a"})
	trg := embedding.NewVocabulary([]string{"x"})
	g := grouped(t, "ghost phantom\n", src, trg)

	xw := mat.NewDense(1, 1, []float64{1})
	s := eval.Evaluate(engine(t), xw, xw, g, 0)
	require.Zero(t, s.Accuracy)
	require.Zero(t, s.Similarity)
	require.Zero(t, s.Coverage)
}
