package graph

import (
	"math"
	"slices"
	"strconv"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphplot/pkg/errors"
)

// =============================================================================
// Source - Capability Interface
// =============================================================================

// Source is anything that can produce a weighted adjacency matrix.
type Source interface {
	Adjacency() (*mat.Dense, error)
}

// Import resolves src into a fresh square matrix.
// The result never aliases the caller's data.
func Import(src Source) (*mat.Dense, error) {
	if src == nil {
		return nil, errors.New(errors.ErrCodeInvalidType, "graph must be a matrix, edge list or graph object, not nil")
	}
	m, err := src.Adjacency()
	if err != nil {
		return nil, err
	}
	if m == nil || m.IsEmpty() {
		return nil, errors.New(errors.ErrCodeInvalidValue, "graph must have at least one node")
	}
	r, c := m.Dims()
	if err := errors.ValidateSquare("graph", r, c); err != nil {
		return nil, err
	}
	return m, nil
}

// =============================================================================
// Dense Adapters
// =============================================================================

type matrixSource struct{ m mat.Matrix }

// FromMatrix adapts any gonum matrix.
func FromMatrix(m mat.Matrix) Source { return matrixSource{m} }

func (s matrixSource) Adjacency() (*mat.Dense, error) {
	if s.m == nil {
		return nil, errors.New(errors.ErrCodeInvalidType, "matrix must not be nil")
	}
	return mat.DenseCopyOf(s.m), nil
}

// Rows is a dense matrix literal.
type Rows [][]float64

// Adjacency implements Source.
func (rows Rows) Adjacency() (*mat.Dense, error) {
	n := len(rows)
	if n == 0 {
		return &mat.Dense{}, nil
	}
	m := mat.NewDense(n, n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, errors.New(errors.ErrCodeDimensionMismatch,
				"row %d has %d entries, want %d", i, len(row), n)
		}
		m.SetRow(i, row)
	}
	return m, nil
}

// =============================================================================
// Graph - Node-Link Form
// =============================================================================

// Graph is the sparse node-link form of a weighted graph.
type Graph struct {
	Directed bool   `json:"directed,omitempty"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// Node is a vertex of a Graph. Its position in Graph.Nodes is its matrix index.
type Node struct {
	ID    string         `json:"id"`
	Label string         `json:"label,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// Edge connects two node IDs. A nil Weight counts as 1.
type Edge struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Weight *float64 `json:"weight,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// W returns the edge weight, defaulting to 1.
func (e Edge) W() float64 {
	if e.Weight == nil {
		return 1
	}
	return *e.Weight
}

// Adjacency implements Source. Repeated edges overwrite earlier weights.
func (g Graph) Adjacency() (*mat.Dense, error) {
	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, dup := index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
		}
		index[n.ID] = i
	}
	n := len(g.Nodes)
	if n == 0 {
		return &mat.Dense{}, nil
	}
	m := mat.NewDense(n, n, nil)
	for _, e := range g.Edges {
		i, ok := index[e.From]
		if !ok {
			return nil, errors.New(errors.ErrCodeKeyNotFound, "edge %s->%s: unknown node %q", e.From, e.To, e.From)
		}
		j, ok := index[e.To]
		if !ok {
			return nil, errors.New(errors.ErrCodeKeyNotFound, "edge %s->%s: unknown node %q", e.From, e.To, e.To)
		}
		m.Set(i, j, e.W())
		if !g.Directed {
			m.Set(j, i, e.W())
		}
	}
	return m, nil
}

// Labels returns the display label of every node in matrix order.
func (g Graph) Labels() []string {
	out := make([]string, len(g.Nodes))
	for i := range g.Nodes {
		out[i] = g.Nodes[i].DisplayLabel()
	}
	return out
}

// FromDense converts a matrix to node-link form with IDs "0".."n-1".
// Symmetric matrices become undirected graphs listing each edge once.
func FromDense(m mat.Matrix) Graph {
	n, _ := m.Dims()
	directed := !IsSymmetric(m)
	g := Graph{Directed: directed, Nodes: make([]Node, n)}
	for i := range g.Nodes {
		g.Nodes[i] = Node{ID: strconv.Itoa(i)}
	}
	for i := 0; i < n; i++ {
		start := 0
		if !directed {
			start = i
		}
		for j := start; j < n; j++ {
			v := m.At(i, j)
			if v == 0 {
				continue
			}
			e := Edge{From: strconv.Itoa(i), To: strconv.Itoa(j)}
			if v != 1 {
				w := v
				e.Weight = &w
			}
			g.Edges = append(g.Edges, e)
		}
	}
	return g
}

// =============================================================================
// Gonum Graph Adapter
// =============================================================================

type gonumSource struct{ g gonum.Graph }

// FromGonum adapts a gonum graph. Nodes are ordered by ID; edge weights come
// from graph.Weighted when implemented and are 1 otherwise.
func FromGonum(g gonum.Graph) Source { return gonumSource{g} }

func (s gonumSource) Adjacency() (*mat.Dense, error) {
	if s.g == nil {
		return nil, errors.New(errors.ErrCodeInvalidType, "graph must not be nil")
	}
	nodes := gonum.NodesOf(s.g.Nodes())
	slices.SortFunc(nodes, func(a, b gonum.Node) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		}
		return 0
	})
	n := len(nodes)
	if n == 0 {
		return &mat.Dense{}, nil
	}
	index := make(map[int64]int, n)
	for i, nd := range nodes {
		index[nd.ID()] = i
	}
	weighted, isWeighted := s.g.(gonum.Weighted)
	m := mat.NewDense(n, n, nil)
	for i, u := range nodes {
		to := s.g.From(u.ID())
		for to.Next() {
			v := to.Node()
			w := 1.0
			if isWeighted {
				if ew, ok := weighted.Weight(u.ID(), v.ID()); ok {
					w = ew
				}
			}
			m.Set(i, index[v.ID()], w)
		}
	}
	return m, nil
}

// ToGonum builds a weighted directed gonum graph from nonzero entries of m.
// Node IDs equal matrix indices.
func ToGonum(m mat.Matrix) *simple.WeightedDirectedGraph {
	n, _ := m.Dims()
	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(int64(i)))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if w := m.At(i, j); w != 0 {
				g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(int64(i)), T: simple.Node(int64(j)), W: w})
			}
		}
	}
	return g
}

// =============================================================================
// Matrix Properties
// =============================================================================

// IsSymmetric reports whether m equals its transpose.
func IsSymmetric(m mat.Matrix) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if m.At(i, j) != m.At(j, i) {
				return false
			}
		}
	}
	return true
}

// IsLoopless reports whether the diagonal of m is all zeros.
func IsLoopless(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < min(r, c); i++ {
		if m.At(i, i) != 0 {
			return false
		}
	}
	return true
}

// IsUnweighted reports whether every entry of m is 0 or 1.
func IsUnweighted(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 && v != 1 {
				return false
			}
		}
	}
	return true
}
