// Package similarity_test contains unit and property tests for the
// bounded-block Engine, including exact equivalence between blocked and
// unblocked reductions.
package similarity_test

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
	"github.com/aitorormazabal/latent-variable-vecmap/similarity"
)

func mustBackend(t *testing.T) backend.Compute {
	t.Helper()
	bk, err := backend.New(backend.DeviceCPU)
	require.NoError(t, err)

	return bk
}

func randomDense(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	return mat.NewDense(rows, cols, data)
}

// TestBestForwardSmall checks the forward arg-max on a hand-built case.
func TestBestForwardSmall(t *testing.T) {
	bk := mustBackend(t)
	eng := similarity.NewEngine(bk)

	x := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	z := mat.NewDense(3, 2, []float64{0.9, 0.1, 0.1, 0.9, -1, -1})

	idx, val := eng.BestForward(x, z)
	require.Equal(t, []int{0, 1}, idx)
	require.InDeltaSlice(t, []float64{0.9, 0.9}, val, 1e-12)
}

// TestBestBackwardSmall checks the backward arg-max on the same case.
func TestBestBackwardSmall(t *testing.T) {
	bk := mustBackend(t)
	eng := similarity.NewEngine(bk)

	x := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	z := mat.NewDense(3, 2, []float64{0.9, 0.1, 0.1, 0.9, -1, -1})

	idx, val := eng.BestBackward(x, z)
	require.Equal(t, []int{0, 1, 0}, idx) // z row 2 ties (-1 vs -1); first row wins
	require.InDeltaSlice(t, []float64{0.9, 0.9, -1}, val, 1e-12)
}

// TestBlockwiseEquivalence: blocked arg-max equals the single-block
// computation for every ceiling, including ceilings that do not divide the
// matrix sizes evenly.
func TestBlockwiseEquivalence(t *testing.T) {
	bk := mustBackend(t)
	rng := rand.New(rand.NewSource(7))
	x := randomDense(rng, 23, 5)
	z := randomDense(rng, 31, 5)

	ref := similarity.NewEngine(bk) // default ceilings exceed both sides
	wantFI, wantFV := ref.BestForward(x, z)
	wantBI, wantBV := ref.BestBackward(x, z)

	for _, bs := range []struct{ r, c int }{{1, 1}, {4, 7}, {7, 4}, {23, 31}, {10, 10}} {
		eng := similarity.NewEngine(bk,
			similarity.WithBlockRows(bs.r), similarity.WithBlockCols(bs.c))

		fi, fv := eng.BestForward(x, z)
		require.Equal(t, wantFI, fi, "forward idx %dx%d", bs.r, bs.c)
		require.InDeltaSlice(t, wantFV, fv, 1e-12)

		bi, bv := eng.BestBackward(x, z)
		require.Equal(t, wantBI, bi, "backward idx %dx%d", bs.r, bs.c)
		require.InDeltaSlice(t, wantBV, bv, 1e-12)
	}
}

// TestBlockwiseEquivalenceProperty drives the same equivalence across
// random shapes and ceilings.
func TestBlockwiseEquivalenceProperty(t *testing.T) {
	bk := mustBackend(t)
	properties := gopter.NewProperties(nil)

	properties.Property("blocked forward arg-max equals unblocked", prop.ForAll(
		func(xr, zr, d, br, bc, seed int) bool {
			rng := rand.New(rand.NewSource(int64(seed)))
			x := randomDense(rng, xr, d)
			z := randomDense(rng, zr, d)

			ref := similarity.NewEngine(bk)
			wantI, wantV := ref.BestForward(x, z)

			eng := similarity.NewEngine(bk,
				similarity.WithBlockRows(br), similarity.WithBlockCols(bc))
			gotI, gotV := eng.BestForward(x, z)

			for i := range wantI {
				if gotI[i] != wantI[i] {
					return false
				}
				if diff := gotV[i] - wantV[i]; diff > 1e-12 || diff < -1e-12 {
					return false
				}
			}

			return true
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 20),
		gen.IntRange(1, 6),
		gen.IntRange(1, 8),
		gen.IntRange(1, 8),
		gen.IntRange(0, 1<<10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestTopKMatchesSort compares TopK with a direct sort of the full
// similarity row, across blocked ceilings.
func TestTopKMatchesSort(t *testing.T) {
	bk := mustBackend(t)
	rng := rand.New(rand.NewSource(99))
	x := randomDense(rng, 9, 4)
	z := randomDense(rng, 17, 4)
	const k = 5

	full := bk.MulTrans(x, z)

	for _, eng := range []*similarity.Engine{
		similarity.NewEngine(bk),
		similarity.NewEngine(bk, similarity.WithBlockRows(2), similarity.WithBlockCols(3)),
	} {
		cols, vals := eng.TopK(x, z, k)
		require.Len(t, cols, 9)

		for r := 0; r < 9; r++ {
			require.Len(t, cols[r], k)

			// The returned values must be the k largest of the full row.
			row := full.RawRowView(r)
			want := append([]float64(nil), row...)
			sortDesc(want)
			got := map[int]bool{}
			for p, c := range cols[r] {
				require.InDelta(t, row[c], vals[r][p], 1e-12)
				require.False(t, got[c], "duplicate column")
				got[c] = true
				if p > 0 {
					require.Greater(t, c, cols[r][p-1], "columns sorted ascending")
				}
			}
			for p := 0; p < k; p++ {
				require.GreaterOrEqual(t, vals[r][p], want[k-1]-1e-12)
			}
		}
	}
}

func sortDesc(v []float64) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] > v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

// TestOptionPanics: non-positive ceilings are programmer errors.
func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { similarity.WithBlockRows(0) })
	require.Panics(t, func() { similarity.WithBlockCols(-1) })
}
