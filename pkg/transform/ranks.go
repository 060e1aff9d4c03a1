package transform

import (
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/graph"
)

// PassToRanks replaces the nonzero edge weights of a by their normalized
// ranks. Ties receive their average rank. Unweighted graphs are returned
// unchanged and negative weights are rejected.
//
//   - zero-boost: ranks are shifted by the number of zero entries and
//     divided by the number of possible edges. Symmetric graphs are ranked on
//     the upper triangle and mirrored; loopless graphs ignore the diagonal.
//   - simple-all: rank * 2 / (n*n + 1)
//   - simple-nonzero: rank * 2 / (nnz + 1)
func PassToRanks(a mat.Matrix, method Method) (*mat.Dense, error) {
	out := mat.DenseCopyOf(a)
	if graph.IsUnweighted(out) {
		return out, nil
	}
	r, c := out.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if out.At(i, j) < 0 {
				return nil, errors.New(errors.ErrCodeInvalidValue,
					"pass-to-ranks requires non-negative weights, found %v at (%d, %d)", out.At(i, j), i, j)
			}
		}
	}

	switch method {
	case ZeroBoost:
		zeroBoost(out)
	case SimpleAll, SimpleNonzero:
		simple(out, method)
	default:
		return nil, errors.ValidateOneOf("pass-to-ranks method", string(method),
			[]string{string(ZeroBoost), string(SimpleAll), string(SimpleNonzero)})
	}
	return out, nil
}

type cell struct{ i, j int }

func simple(m *mat.Dense, method Method) {
	n, _ := m.Dims()
	var cells []cell
	var vals []float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := m.At(i, j); v != 0 {
				cells = append(cells, cell{i, j})
				vals = append(vals, v)
			}
		}
	}
	normalizer := float64(len(vals))
	if method == SimpleAll {
		normalizer = float64(n * n)
	}
	for k, rank := range Rank(vals) {
		m.Set(cells[k].i, cells[k].j, rank*2/(normalizer+1))
	}
}

func zeroBoost(m *mat.Dense) {
	n, _ := m.Dims()
	fn := float64(n)
	symmetric := graph.IsSymmetric(m)
	loopless := graph.IsLoopless(m)

	var cells []cell
	var vals []float64
	zeros := 0
	for i := 0; i < n; i++ {
		start := 0
		if symmetric {
			start = i
		}
		for j := start; j < n; j++ {
			if loopless && i == j {
				continue
			}
			if v := m.At(i, j); v != 0 {
				cells = append(cells, cell{i, j})
				vals = append(vals, v)
			} else {
				zeros++
			}
		}
	}

	var possible float64
	switch {
	case symmetric && loopless:
		possible = fn * (fn - 1) / 2
	case symmetric:
		possible = fn * (fn + 1) / 2
	case loopless:
		possible = fn * (fn - 1)
	default:
		possible = fn * fn
	}

	for k, rank := range Rank(vals) {
		v := (rank + float64(zeros)) / possible
		m.Set(cells[k].i, cells[k].j, v)
		if symmetric {
			m.Set(cells[k].j, cells[k].i, v)
		}
	}
}

// Rank returns the 1-based ranks of vals, giving tied values the average of
// the ranks they span.
func Rank(vals []float64) []float64 {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case vals[a] < vals[b]:
			return -1
		case vals[a] > vals[b]:
			return 1
		}
		return 0
	})
	ranks := make([]float64, len(vals))
	for start := 0; start < len(idx); {
		end := start + 1
		for end < len(idx) && vals[idx[end]] == vals[idx[start]] {
			end++
		}
		avg := float64(start+end+1) / 2
		for k := start; k < end; k++ {
			ranks[idx[k]] = avg
		}
		start = end
	}
	return ranks
}
