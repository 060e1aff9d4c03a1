package io

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/gmm"
	"github.com/matzehuels/graphplot/pkg/graph"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/observability"
	"github.com/matzehuels/graphplot/pkg/table"
)

// MatrixExtensions lists the file extensions ImportMatrix understands.
var MatrixExtensions = []string{".csv", ".json", ".edges"}

// matrixFile is the JSON matrix document. Exactly one of Matrix, Nodes or
// N is expected.
type matrixFile struct {
	Matrix   [][]float64     `json:"matrix,omitempty"`
	N        int             `json:"n,omitempty"`
	Directed bool            `json:"directed,omitempty"`
	Nodes    []graph.Node    `json:"nodes,omitempty"`
	Edges    json.RawMessage `json:"edges,omitempty"`
}

// indexEdge is an edge between matrix indices.
type indexEdge struct {
	From   int      `json:"from"`
	To     int      `json:"to"`
	Weight *float64 `json:"weight,omitempty"`
}

// =============================================================================
// Matrices
// =============================================================================

// ImportMatrix reads the matrix at path, choosing the decoder by extension.
// Data matrices may be rectangular; graphs are checked for squareness later
// by [graph.Import].
func ImportMatrix(path string) (m *mat.Dense, err error) {
	defer func() { observability.IO().OnRead(path, "matrix", err) }()

	var read func(io.Reader) (*mat.Dense, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		read = ReadMatrixCSV
	case ".json":
		read = ReadMatrixJSON
	case ".edges":
		read = ReadEdgeList
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"matrix file must end in one of {%s}, not %q", strings.Join(MatrixExtensions, ", "), ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if m, err = read(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadMatrixCSV decodes comma separated rows of numbers. Every row must have
// the same number of fields.
func ReadMatrixCSV(r io.Reader) (*mat.Dense, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv has no rows")
	}
	rows := make([][]float64, len(records))
	for i, rec := range records {
		rows[i] = make([]float64, len(rec))
		for j, s := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "row %d column %d", i+1, j+1)
			}
			rows[i][j] = v
		}
	}
	return denseOf(rows)
}

// ReadMatrixJSON decodes one of three JSON forms:
//
//	{"matrix": [[0, 1], [1, 0]]}
//	{"n": 2, "edges": [{"from": 0, "to": 1, "weight": 2}]}
//	{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b"}]}
//
// Edge lists are undirected unless "directed" is true.
func ReadMatrixJSON(r io.Reader) (*mat.Dense, error) {
	var doc matrixFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	switch {
	case doc.Matrix != nil:
		return denseOf(doc.Matrix)

	case doc.Nodes != nil:
		g := graph.Graph{Directed: doc.Directed, Nodes: doc.Nodes}
		if len(doc.Edges) > 0 {
			if err := json.Unmarshal(doc.Edges, &g.Edges); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode edges")
			}
		}
		return g.Adjacency()

	case doc.N > 0:
		var edges []indexEdge
		if len(doc.Edges) > 0 {
			if err := json.Unmarshal(doc.Edges, &edges); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode edges")
			}
		}
		m := mat.NewDense(doc.N, doc.N, nil)
		for _, e := range edges {
			if e.From < 0 || e.From >= doc.N || e.To < 0 || e.To >= doc.N {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"edge %d->%d is outside a graph of %d nodes", e.From, e.To, doc.N)
			}
			w := 1.0
			if e.Weight != nil {
				w = *e.Weight
			}
			setEdge(m, e.From, e.To, w, doc.Directed)
		}
		return m, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, `json must hold "matrix", "nodes" or "n" and "edges"`)
}

// ReadEdgeList decodes whitespace separated "i j [w]" lines into an
// undirected graph with max(i, j)+1 nodes. Blank lines and lines starting
// with '#' are skipped; missing weights count as 1.
func ReadEdgeList(r io.Reader) (*mat.Dense, error) {
	var edges []indexEdge
	n := 0
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 && len(fields) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"line %d: want \"i j [w]\", got %d fields", line, len(fields))
		}
		var e indexEdge
		var err error
		if e.From, err = strconv.Atoi(fields[0]); err != nil || e.From < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: bad node index %q", line, fields[0])
		}
		if e.To, err = strconv.Atoi(fields[1]); err != nil || e.To < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: bad node index %q", line, fields[1])
		}
		if len(fields) == 3 {
			w, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: weight", line)
			}
			e.Weight = &w
		}
		n = max(n, e.From+1, e.To+1)
		edges = append(edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read edge list")
	}
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "edge list has no edges")
	}
	m := mat.NewDense(n, n, nil)
	for _, e := range edges {
		w := 1.0
		if e.Weight != nil {
			w = *e.Weight
		}
		setEdge(m, e.From, e.To, w, false)
	}
	return m, nil
}

func setEdge(m *mat.Dense, i, j int, w float64, directed bool) {
	m.Set(i, j, w)
	if !directed {
		m.Set(j, i, w)
	}
}

func denseOf(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "matrix is empty")
	}
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, errors.New(errors.ErrCodeDimensionMismatch,
				"row %d has %d entries, want %d", i+1, len(row), len(rows[0]))
		}
		m.SetRow(i, row)
	}
	return m, nil
}

// =============================================================================
// Labels, Tables and Models
// =============================================================================

// ReadLabels decodes one label per line. Surrounding whitespace is trimmed
// and a trailing empty line is ignored.
func ReadLabels(r io.Reader) (hier.Labels, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read labels")
	}
	data = bytes.TrimRight(data, "\r\n")
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "label file is empty")
	}
	lines := strings.Split(string(data), "\n")
	labels := make(hier.Labels, len(lines))
	for i, l := range lines {
		labels[i] = strings.TrimSpace(l)
	}
	return labels, nil
}

// ImportLabels reads a label file.
func ImportLabels(path string) (l hier.Labels, err error) {
	defer func() { observability.IO().OnRead(path, "labels", err) }()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLabels(f)
}

// ImportTable reads a node table from a CSV file with a header row.
func ImportTable(path string) (t *table.Table, err error) {
	defer func() { observability.IO().OnRead(path, "table", err) }()
	return table.ReadCSVFile(path)
}

// ImportModel reads a fitted mixture model from JSON.
func ImportModel(path string) (m *gmm.Model, err error) {
	defer func() { observability.IO().OnRead(path, "model", err) }()
	return gmm.ReadModelFile(path)
}
