package hier

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphplot/pkg/errors"
)

// Permutation maps a new position to the original node index: position i
// of the reordered sequence holds original node p[i].
type Permutation []int

// Identity returns the permutation [0, 1, ..., n-1].
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// IsIdentity reports whether p leaves every index in place.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if i != v {
			return false
		}
	}
	return true
}

// Inverse returns q such that q[p[i]] == i.
func (p Permutation) Inverse() Permutation {
	q := make(Permutation, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

// Apply reindexes a square matrix symmetrically, out[i][j] = m[p[i]][p[j]].
// The input is not modified.
func (p Permutation) Apply(m mat.Matrix) *mat.Dense {
	if len(p) == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(len(p), len(p), nil)
	for i, pi := range p {
		for j, pj := range p {
			out.Set(i, j, m.At(pi, pj))
		}
	}
	return out
}

// ApplyLabels reorders a label vector by p.
func (p Permutation) ApplyLabels(l Labels) Labels {
	out := make(Labels, len(p))
	for i, v := range p {
		out[i] = l[v]
	}
	return out
}

type sortKey struct {
	outerCount int
	outer      string
	innerCount int
	inner      string
	edgesum    float64
}

// SortIndices returns the stable permutation ordering nodes by outer group
// size (descending), outer label, inner group size (descending), inner label
// and, when sortNodes is set, total edge weight (descending).
//
// graph may be nil when sortNodes is false.
func SortIndices(graph mat.Matrix, inner, outer Labels, sortNodes bool) (Permutation, error) {
	n := len(inner)
	if len(outer) != n {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"inner labels (%d) and outer labels (%d) must have the same length", n, len(outer))
	}
	var edgesums []float64
	if sortNodes {
		if graph == nil {
			return nil, errors.New(errors.ErrCodeInvalidValue, "degree sorting requires a graph")
		}
		r, c := graph.Dims()
		if err := errors.ValidateSquare("graph", r, c); err != nil {
			return nil, err
		}
		if err := errors.ValidateLength("inner labels", n, r); err != nil {
			return nil, err
		}
		edgesums = EdgeSums(graph)
	}

	innerCounts := FreqVec(inner)
	outerCounts := FreqVec(outer)
	keys := make([]sortKey, n)
	for i := range keys {
		keys[i] = sortKey{
			outerCount: n - outerCounts[i],
			outer:      outer[i],
			innerCount: n - innerCounts[i],
			inner:      inner[i],
		}
	}
	if sortNodes {
		maxSum := 0.0
		if n > 0 {
			maxSum = slices.Max(edgesums)
		}
		for i := range keys {
			keys[i].edgesum = maxSum - edgesums[i]
		}
	}

	cmpOuter := outer.Compare()
	cmpInner := inner.Compare()
	perm := Identity(n)
	slices.SortStableFunc(perm, func(a, b int) int {
		ka, kb := keys[a], keys[b]
		return cmp.Or(
			cmp.Compare(ka.outerCount, kb.outerCount),
			cmpOuter(ka.outer, kb.outer),
			cmp.Compare(ka.innerCount, kb.innerCount),
			cmpInner(ka.inner, kb.inner),
			cmp.Compare(ka.edgesum, kb.edgesum),
		)
	})
	return perm, nil
}

// SortGraph sorts graph and returns the reordered copy with its permutation.
func SortGraph(graph mat.Matrix, inner, outer Labels, sortNodes bool) (*mat.Dense, Permutation, error) {
	perm, err := SortIndices(graph, inner, outer, sortNodes)
	if err != nil {
		return nil, nil, err
	}
	return perm.Apply(graph), perm, nil
}

// EdgeSums returns row sum plus column sum for every node.
func EdgeSums(graph mat.Matrix) []float64 {
	r, c := graph.Dims()
	sums := make([]float64, r)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := graph.At(i, j)
			sums[i] += v
			if j < r {
				sums[j] += v
			}
		}
	}
	return sums
}
