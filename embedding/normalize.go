// Package embedding: pre-loop normalization actions.
package embedding

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Action is one normalization step.
type Action int

const (
	// Unit scales every row to unit L2 length. Zero rows are left as-is.
	Unit Action = iota

	// Center subtracts each column's mean.
	Center

	// UnitDim scales every column to unit L2 length. Zero columns are left as-is.
	UnitDim

	// CenterEmb subtracts each row's mean.
	CenterEmb
)

// ParseAction maps the configuration tags {unit, center, unitdim,
// centeremb} onto an Action.
func ParseAction(tag string) (Action, error) {
	switch tag {
	case "unit":
		return Unit, nil
	case "center":
		return Center, nil
	case "unitdim":
		return UnitDim, nil
	case "centeremb":
		return CenterEmb, nil
	default:
		return Unit, fmt.Errorf("%w: %q", ErrUnknownAction, tag)
	}
}

// String returns the configuration tag.
func (a Action) String() string {
	switch a {
	case Center:
		return "center"
	case UnitDim:
		return "unitdim"
	case CenterEmb:
		return "centeremb"
	default:
		return "unit"
	}
}

// Normalize applies actions in order, in place, to every matrix given.
// It runs once, before the training loop starts.
func Normalize(actions []Action, ms ...*mat.Dense) error {
	for _, a := range actions {
		var apply func(*mat.Dense)
		switch a {
		case Unit:
			apply = lengthNormalize
		case Center:
			apply = meanCenter
		case UnitDim:
			apply = lengthNormalizeDimensionwise
		case CenterEmb:
			apply = meanCenterEmbeddingwise
		default:
			return fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
		}
		for _, m := range ms {
			apply(m)
		}
	}

	return nil
}

// lengthNormalize scales rows to unit L2 norm; zero rows are untouched.
func lengthNormalize(m *mat.Dense) {
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		if n := floats.Norm(row, 2); n != 0 {
			floats.Scale(1/n, row)
		}
	}
}

// meanCenter subtracts the per-column mean.
func meanCenter(m *mat.Dense) {
	rows, cols := m.Dims()
	col := make([]float64, rows)
	var i, j int
	for j = 0; j < cols; j++ {
		mat.Col(col, j, m)
		mean := stat.Mean(col, nil)
		for i = 0; i < rows; i++ {
			m.Set(i, j, m.At(i, j)-mean)
		}
	}
}

// lengthNormalizeDimensionwise scales columns to unit L2 norm.
func lengthNormalizeDimensionwise(m *mat.Dense) {
	rows, cols := m.Dims()
	col := make([]float64, rows)
	var i, j int
	for j = 0; j < cols; j++ {
		mat.Col(col, j, m)
		n := floats.Norm(col, 2)
		if n == 0 || math.IsNaN(n) {
			continue
		}
		for i = 0; i < rows; i++ {
			m.Set(i, j, m.At(i, j)/n)
		}
	}
}

// meanCenterEmbeddingwise subtracts the per-row mean.
func meanCenterEmbeddingwise(m *mat.Dense) {
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		mean := stat.Mean(row, nil)
		for j := range row {
			row[j] -= mean
		}
	}
}
