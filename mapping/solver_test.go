// Package mapping_test contains unit and property tests for the three
// mapping policies: orthogonality, whitening correctness, the de-whitening
// round-trip, and exact recovery scenarios.
package mapping_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
	"github.com/aitorormazabal/latent-variable-vecmap/dictionary"
	"github.com/aitorormazabal/latent-variable-vecmap/mapping"
)

func mustBackend(t *testing.T) backend.Compute {
	t.Helper()
	bk, err := backend.New(backend.DeviceCPU)
	require.NoError(t, err)

	return bk
}

// fullDict pairs row i with row i for n rows.
func fullDict(n int) dictionary.Dictionary {
	d := dictionary.Dictionary{Src: make([]int, n), Trg: make([]int, n)}
	for i := 0; i < n; i++ {
		d.Src[i] = i
		d.Trg[i] = i
	}

	return d
}

func rotation2D(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)

	return mat.NewDense(2, 2, []float64{c, -s, s, c})
}

func randomDense(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	return mat.NewDense(rows, cols, data)
}

// TestOrthogonalW feeds the identity as the source matrix so XW is W
// itself, then checks ‖WᵀW − I‖ ≈ 0.
func TestOrthogonalW(t *testing.T) {
	bk := mustBackend(t)
	rng := rand.New(rand.NewSource(3))

	x := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	z := randomDense(rng, 3, 3)

	res, err := mapping.Solve(bk, x, z, fullDict(3), mapping.Options{Policy: mapping.Orthogonal})
	require.NoError(t, err)

	var gram mat.Dense
	gram.Mul(res.XW.T(), res.XW)
	var i, j int
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, gram.At(i, j), 1e-10, "WᵀW[%d,%d]", i, j)
		}
	}
}

// TestOrthogonalWProperty repeats the orthogonality check over random
// full-rank targets.
func TestOrthogonalWProperty(t *testing.T) {
	bk := mustBackend(t)
	properties := gopter.NewProperties(nil)

	properties.Property("Procrustes W is orthogonal", prop.ForAll(
		func(seed int, d int) bool {
			rng := rand.New(rand.NewSource(int64(seed)))
			eye := mat.NewDense(d, d, nil)
			for i := 0; i < d; i++ {
				eye.Set(i, i, 1)
			}
			z := randomDense(rng, d, d)

			res, err := mapping.Solve(bk, eye, z, fullDict(d),
				mapping.Options{Policy: mapping.Orthogonal})
			if err != nil {
				return false
			}

			var gram mat.Dense
			gram.Mul(res.XW.T(), res.XW)
			for i := 0; i < d; i++ {
				for j := 0; j < d; j++ {
					want := 0.0
					if i == j {
						want = 1.0
					}
					if math.Abs(gram.At(i, j)-want) > 1e-8 {
						return false
					}
				}
			}

			return true
		},
		gen.IntRange(0, 1<<16),
		gen.IntRange(2, 6),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestOrthogonalRecoversRotation: two 3-row 2-D sets related by a known
// rotation; the solved mapping must land the source rows on their targets.
func TestOrthogonalRecoversRotation(t *testing.T) {
	bk := mustBackend(t)

	x := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 0.6, 0.8})
	rot := rotation2D(math.Pi / 5)
	var z mat.Dense
	z.Mul(x, rot.T()) // each row rotated by theta

	res, err := mapping.Solve(bk, x, &z, fullDict(3), mapping.Options{Policy: mapping.Orthogonal})
	require.NoError(t, err)

	var i, j int
	for i = 0; i < 3; i++ {
		for j = 0; j < 2; j++ {
			require.InDelta(t, z.At(i, j), res.XW.At(i, j), 1e-10)
		}
	}
	require.Equal(t, &z, res.ZW, "orthogonal policy leaves Z untouched")
}

// TestUnconstrainedExactRecovery: when Z = X·M with full-rank dictionary
// rows, least squares recovers M exactly.
func TestUnconstrainedExactRecovery(t *testing.T) {
	bk := mustBackend(t)
	rng := rand.New(rand.NewSource(11))

	x := randomDense(rng, 6, 3)
	m := randomDense(rng, 3, 3)
	var z mat.Dense
	z.Mul(x, m)

	res, err := mapping.Solve(bk, x, &z, fullDict(6), mapping.Options{Policy: mapping.Unconstrained})
	require.NoError(t, err)

	var i, j int
	for i = 0; i < 6; i++ {
		for j = 0; j < 3; j++ {
			require.InDelta(t, z.At(i, j), res.XW.At(i, j), 1e-8)
		}
	}
}

// TestUnconstrainedSingular surfaces rank deficiency as ErrSingular.
func TestUnconstrainedSingular(t *testing.T) {
	bk := mustBackend(t)

	// Both dictionary rows identical: XdᵀXd has rank 1.
	x := mat.NewDense(2, 2, []float64{1, 2, 1, 2})
	z := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	_, err := mapping.Solve(bk, x, z, fullDict(2), mapping.Options{Policy: mapping.Unconstrained})
	require.ErrorIs(t, err, backend.ErrSingular)
}

// TestWhiteningCorrectness: with whitening on and no re-weighting, the
// dictionary-selected rows of XW have identity covariance.
func TestWhiteningCorrectness(t *testing.T) {
	bk := mustBackend(t)
	rng := rand.New(rand.NewSource(21))

	x := randomDense(rng, 8, 3)
	z := randomDense(rng, 8, 3)

	res, err := mapping.Solve(bk, x, z, fullDict(8), mapping.Options{Whiten: true})
	require.NoError(t, err)

	xd := mat.DenseCopyOf(res.XW.Slice(0, 8, 0, 3))
	var cov mat.Dense
	cov.Mul(xd.T(), xd)
	var i, j int
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, cov.At(i, j), 1e-8, "cov[%d,%d]", i, j)
		}
	}
}

// TestDewhitenRoundTrip: whitening followed by same-side de-whitening must
// reproduce the original rows up to the intervening rotation, so the row
// Gram matrix is preserved.
func TestDewhitenRoundTrip(t *testing.T) {
	bk := mustBackend(t)
	rng := rand.New(rand.NewSource(31))

	x := randomDense(rng, 5, 3)
	z := randomDense(rng, 5, 3)

	res, err := mapping.Solve(bk, x, z, fullDict(5), mapping.Options{
		Whiten:      true,
		SrcDewhiten: mapping.DewhitenSrc,
		TrgDewhiten: mapping.DewhitenTrg,
	})
	require.NoError(t, err)

	var want, got mat.Dense
	want.Mul(x, x.T())
	got.Mul(res.XW, res.XW.T())
	var i, j int
	for i = 0; i < 5; i++ {
		for j = 0; j < 5; j++ {
			require.InDelta(t, want.At(i, j), got.At(i, j), 1e-7, "src gram[%d,%d]", i, j)
		}
	}

	want.Mul(z, z.T())
	got.Mul(res.ZW, res.ZW.T())
	for i = 0; i < 5; i++ {
		for j = 0; j < 5; j++ {
			require.InDelta(t, want.At(i, j), got.At(i, j), 1e-7, "trg gram[%d,%d]", i, j)
		}
	}
}

// TestDimReduction truncates both sides to the leading k columns.
func TestDimReduction(t *testing.T) {
	bk := mustBackend(t)
	rng := rand.New(rand.NewSource(41))

	x := randomDense(rng, 6, 4)
	z := randomDense(rng, 6, 4)

	res, err := mapping.Solve(bk, x, z, fullDict(6), mapping.Options{DimReduction: 2})
	require.NoError(t, err)

	_, xc := res.XW.Dims()
	_, zc := res.ZW.Dims()
	require.Equal(t, 2, xc)
	require.Equal(t, 2, zc)
}

// TestValidationErrors covers the pre-computation rejections.
func TestValidationErrors(t *testing.T) {
	bk := mustBackend(t)
	x := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	z := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	_, err := mapping.Solve(bk, x, z, fullDict(2), mapping.Options{SrcDewhiten: mapping.DewhitenSrc})
	require.ErrorIs(t, err, mapping.ErrDewhitenRequiresWhiten)

	_, err = mapping.Solve(bk, x, z, dictionary.Dictionary{}, mapping.Options{})
	require.ErrorIs(t, err, mapping.ErrEmptyDictionary)

	bad := dictionary.Dictionary{Src: []int{5}, Trg: []int{0}}
	_, err = mapping.Solve(bk, x, z, bad, mapping.Options{})
	require.ErrorIs(t, err, mapping.ErrDictionaryBounds)
}
