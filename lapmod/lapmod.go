// SPDX-License-Identifier: MIT

// Package lapmod: the CSR shortest-augmenting-path solver.
package lapmod

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrBadStructure signals inconsistent CSR input: offset/length
	// disagreement, unsorted or out-of-range column indices.
	ErrBadStructure = errors.New("lapmod: malformed sparse cost structure")

	// ErrInfeasible signals that no perfect matching exists within the
	// sparse candidate sets.
	ErrInfeasible = errors.New("lapmod: no feasible assignment")
)

// Solve finds the minimum-cost perfect matching of the n×n sparse problem
// (cc, ii, kk). It returns the total cost, rowToCol (the column assigned
// to each row) and colToRow (the row assigned to each column).
func Solve(n int, cc []float64, ii, kk []int) (float64, []int, []int, error) {
	if err := validate(n, cc, ii, kk); err != nil {
		return 0, nil, nil, err
	}

	inf := math.Inf(1)
	u := make([]float64, n)      // row potentials
	v := make([]float64, n)      // column potentials
	rowToCol := make([]int, n)   // assignment by row
	colToRow := make([]int, n)   // assignment by column
	dist := make([]float64, n)   // shortest alternating-path cost per column
	pred := make([]int, n)       // predecessor row on that path
	inTreeRow := make([]bool, n) // rows scanned into the alternating tree
	done := make([]bool, n)      // columns finalized this phase
	remaining := make([]int, n)  // columns not yet finalized
	for i := range rowToCol {
		rowToCol[i] = -1
		colToRow[i] = -1
	}

	var curRow, i, j, p, it, index, numRemaining int
	var minVal, lowest, reduced float64
	for curRow = 0; curRow < n; curRow++ {
		for j = 0; j < n; j++ {
			dist[j] = inf
			pred[j] = -1
			inTreeRow[j] = false
			done[j] = false
			remaining[j] = j
		}
		numRemaining = n
		minVal = 0
		i = curRow

		sink := -1
		for sink == -1 {
			inTreeRow[i] = true

			// Relax the sparse edges of the tree's newest row.
			for p = ii[i]; p < ii[i+1]; p++ {
				j = kk[p]
				if done[j] {
					continue
				}
				if reduced = minVal + cc[p] - u[i] - v[j]; reduced < dist[j] {
					dist[j] = reduced
					pred[j] = i
				}
			}

			// Pick the closest unfinalized column; free columns win ties so
			// phases terminate as early as possible.
			lowest = inf
			index = -1
			for it = 0; it < numRemaining; it++ {
				j = remaining[it]
				if dist[j] < lowest || (dist[j] == lowest && colToRow[j] == -1) {
					lowest = dist[j]
					index = it
				}
			}
			if index == -1 || math.IsInf(lowest, 1) {
				return 0, nil, nil, fmt.Errorf("%w: row %d unreachable", ErrInfeasible, curRow)
			}

			j = remaining[index]
			numRemaining--
			remaining[index] = remaining[numRemaining]
			done[j] = true
			minVal = lowest
			if colToRow[j] == -1 {
				sink = j
			} else {
				i = colToRow[j]
			}
		}

		// Dual update keeps every scanned edge's reduced cost consistent.
		u[curRow] += minVal
		for i = 0; i < n; i++ {
			if inTreeRow[i] && i != curRow {
				u[i] += minVal - dist[rowToCol[i]]
			}
		}
		for j = 0; j < n; j++ {
			if done[j] {
				v[j] -= minVal - dist[j]
			}
		}

		// Flip the augmenting path from the sink back to curRow.
		j = sink
		for {
			i = pred[j]
			colToRow[j] = i
			rowToCol[i], j = j, rowToCol[i]
			if i == curRow {
				break
			}
		}
	}

	var total float64
	for i = 0; i < n; i++ {
		c, ok := costAt(cc, ii, kk, i, rowToCol[i])
		if !ok {
			return 0, nil, nil, fmt.Errorf("%w: row %d assigned outside its candidates", ErrInfeasible, i)
		}
		total += c
	}

	return total, rowToCol, colToRow, nil
}

// validate checks the CSR invariants: monotone offsets, matching lengths,
// in-range and row-sorted column indices.
func validate(n int, cc []float64, ii, kk []int) error {
	if n <= 0 || len(ii) != n+1 || ii[0] != 0 {
		return fmt.Errorf("%w: want %d+1 offsets starting at 0", ErrBadStructure, n)
	}
	if ii[n] != len(cc) || len(cc) != len(kk) {
		return fmt.Errorf("%w: offsets cover %d entries, have %d costs / %d columns",
			ErrBadStructure, ii[n], len(cc), len(kk))
	}
	for i := 0; i < n; i++ {
		if ii[i+1] < ii[i] {
			return fmt.Errorf("%w: row %d has negative extent", ErrBadStructure, i)
		}
		for p := ii[i]; p < ii[i+1]; p++ {
			if kk[p] < 0 || kk[p] >= n {
				return fmt.Errorf("%w: row %d column %d out of range", ErrBadStructure, i, kk[p])
			}
			if p > ii[i] && kk[p] < kk[p-1] {
				return fmt.Errorf("%w: row %d columns not sorted", ErrBadStructure, i)
			}
		}
	}

	return nil
}

// costAt finds cost (i, j) by binary search over row i's sorted columns.
// Duplicate columns within a row resolve to the cheapest entry.
func costAt(cc []float64, ii, kk []int, i, j int) (float64, bool) {
	lo, hi := ii[i], ii[i+1]
	row := kk[lo:hi]
	at := sort.SearchInts(row, j)
	if at == len(row) || row[at] != j {
		return 0, false
	}

	best := cc[lo+at]
	for p := lo + at + 1; p < hi && kk[p] == j; p++ {
		if cc[p] < best {
			best = cc[p]
		}
	}

	return best, true
}
