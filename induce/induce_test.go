// Package induce_test contains unit tests for nearest-neighbor and
// assignment-mode dictionary induction.
package induce_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
	"github.com/aitorormazabal/latent-variable-vecmap/induce"
	"github.com/aitorormazabal/latent-variable-vecmap/similarity"
)

func engine(t *testing.T, opts ...similarity.Option) *similarity.Engine {
	t.Helper()
	bk, err := backend.New(backend.DeviceCPU)
	require.NoError(t, err)

	return similarity.NewEngine(bk, opts...)
}

// alignedPair returns two already-aligned matrices: row i of x matches row
// i of z best.
func alignedPair() (*mat.Dense, *mat.Dense) {
	x := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 0.7, 0.7})
	z := mat.NewDense(3, 2, []float64{0.95, 0.05, 0.05, 0.95, 0.72, 0.68})

	return x, z
}

// TestEnumValues pins the Direction and Proportion constant values the
// config layer and wire parsers rely on.
func TestEnumValues(t *testing.T) {
	require.Equal(t, induce.Direction(0), induce.Forward)
	require.Equal(t, induce.Direction(1), induce.Backward)
	require.Equal(t, induce.Direction(2), induce.Union)
	require.Equal(t, induce.Proportion(0), induce.OneToOne)
	require.Equal(t, induce.Proportion(1), induce.OneToTwo)
	require.Equal(t, induce.Proportion(2), induce.TwoToOne)
}

// TestNearestForward pairs every source row with its best target.
func TestNearestForward(t *testing.T) {
	x, z := alignedPair()
	res := induce.NearestNeighbor(engine(t), x, z, induce.Forward)

	require.Equal(t, []int{0, 1, 2}, res.Dict.Src)
	require.Equal(t, []int{0, 1, 2}, res.Dict.Trg)
	require.Len(t, res.BestForward, 3)
	require.Nil(t, res.BestBackward)
}

// TestNearestBackward pairs every target row with its best source.
func TestNearestBackward(t *testing.T) {
	x, z := alignedPair()
	res := induce.NearestNeighbor(engine(t), x, z, induce.Backward)

	require.Equal(t, []int{0, 1, 2}, res.Dict.Trg)
	require.Equal(t, []int{0, 1, 2}, res.Dict.Src)
	require.Len(t, res.BestBackward, 3)
	require.Nil(t, res.BestForward)
}

// TestUnionSize: the union dictionary size equals the sum of forward and
// backward sizes, duplicates preserved.
func TestUnionSize(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	x := mat.NewDense(5, 3, nil)
	z := mat.NewDense(7, 3, nil)
	for _, m := range []*mat.Dense{x, z} {
		r, c := m.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				m.Set(i, j, rng.NormFloat64())
			}
		}
	}

	fwd := induce.NearestNeighbor(engine(t), x, z, induce.Forward)
	bwd := induce.NearestNeighbor(engine(t), x, z, induce.Backward)
	uni := induce.NearestNeighbor(engine(t), x, z, induce.Union)

	require.Equal(t, fwd.Dict.Len()+bwd.Dict.Len(), uni.Dict.Len())
	require.Equal(t, 5+7, uni.Dict.Len())
}

// TestObjectiveDirections checks the three objective folds.
func TestObjectiveDirections(t *testing.T) {
	res := induce.Result{
		BestForward:  []float64{0.2, 0.4},
		BestBackward: []float64{0.8, 1.0},
	}

	require.InDelta(t, 0.3, res.Objective(induce.Forward), 1e-12)
	require.InDelta(t, 0.9, res.Objective(induce.Backward), 1e-12)
	require.InDelta(t, 0.6, res.Objective(induce.Union), 1e-12)
}

// TestAssignmentUniqueOptimum: the matching must pick the permutation with
// maximal total similarity, even when greedy per-row arg-max would collide.
func TestAssignmentUniqueOptimum(t *testing.T) {
	// Both source rows prefer target 0 (0.9 and 0.85), but the global
	// optimum assigns row 0 → target 1, row 1 → target 0.
	x := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	z := mat.NewDense(2, 2, []float64{0.9, 0.85, 0.8, 0.1})

	res, err := induce.Assignment(engine(t), x, z, induce.AssignmentOptions{Candidates: 2})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, res.Dict.Src)
	require.Equal(t, []int{1, 0}, res.Dict.Trg)
}

// TestAssignmentChunkEquivalence: chunk sizes smaller than the vocabulary
// must produce the same pairs as one big chunk, for a fixed instance with
// a unique optimal assignment.
func TestAssignmentChunkEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	n, d := 12, 4
	x := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			x.Set(i, j, rng.NormFloat64())
		}
	}
	// z is a noisy shuffle-free copy, giving a unique optimum near the
	// identity permutation.
	z := mat.DenseCopyOf(x)

	want, err := induce.Assignment(engine(t), x, z, induce.AssignmentOptions{
		ChunkSize:  n + 5,
		Candidates: n,
	})
	require.NoError(t, err)

	for _, chunk := range []int{1, 3, 5, n} {
		got, gotErr := induce.Assignment(engine(t), x, z, induce.AssignmentOptions{
			ChunkSize:  chunk,
			Candidates: n,
		})
		require.NoError(t, gotErr)
		require.Equal(t, want.Dict.Src, got.Dict.Src, "chunk %d", chunk)
		require.Equal(t, want.Dict.Trg, got.Dict.Trg, "chunk %d", chunk)
	}
}

// TestAssignmentRank restricts matching to the top-n rows.
func TestAssignmentRank(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{1, 0, 0, 1, -1, 0, 0, -1})
	z := mat.DenseCopyOf(x)

	res, err := induce.Assignment(engine(t), x, z, induce.AssignmentOptions{
		Rank:       2,
		Candidates: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Dict.Len())
	require.Equal(t, []int{0, 1}, res.Dict.Src)
	require.Equal(t, []int{0, 1}, res.Dict.Trg)
	require.Len(t, res.BestForward, 2)
}

// TestAssignmentRepeats: symmetric replication gives every source two
// distinct targets folded back into the base range.
func TestAssignmentRepeats(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	z := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	res, err := induce.Assignment(engine(t), x, z, induce.AssignmentOptions{
		Repeats:    2,
		Candidates: 2,
		Proportion: induce.OneToOne,
	})
	require.NoError(t, err)
	require.Equal(t, 4, res.Dict.Len())

	// Each source appears exactly twice.
	counts := map[int]int{}
	for _, s := range res.Dict.Src {
		counts[s]++
	}
	require.Equal(t, map[int]int{0: 2, 1: 2}, counts)

	// All folded targets lie in the base range.
	for _, trg := range res.Dict.Trg {
		require.GreaterOrEqual(t, trg, 0)
		require.Less(t, trg, 2)
	}
}

// TestParseProportion covers the tags and the sentinel.
func TestParseProportion(t *testing.T) {
	for tag, want := range map[string]induce.Proportion{
		"1:1": induce.OneToOne,
		"1:2": induce.OneToTwo,
		"2:1": induce.TwoToOne,
		"":    induce.OneToOne,
	} {
		p, err := induce.ParseProportion(tag)
		require.NoError(t, err)
		require.Equal(t, want, p)
	}
	_, err := induce.ParseProportion("3:3")
	require.ErrorIs(t, err, induce.ErrUnknownProportion)
}
