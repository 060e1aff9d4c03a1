package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/graph"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/observability"
	"github.com/matzehuels/graphplot/pkg/plot"
)

type ioEvent struct {
	op, path, kind string
	err            error
}

type recordingHooks struct{ events []ioEvent }

func (h *recordingHooks) OnRead(path, kind string, err error) {
	h.events = append(h.events, ioEvent{"read", path, kind, err})
}

func (h *recordingHooks) OnWrite(path string, _ int, err error) {
	h.events = append(h.events, ioEvent{"write", path, "", err})
}

var _ observability.IOHooks = (*recordingHooks)(nil)

func recordIO(t *testing.T) *recordingHooks {
	t.Helper()
	h := &recordingHooks{}
	observability.SetIOHooks(h)
	t.Cleanup(observability.Reset)
	return h
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadMatrixCSV(t *testing.T) {
	m, err := ReadMatrixCSV(strings.NewReader("# weights\n0, 1.5, 0\n1.5, 0, 2\n"))
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, []int{2, 3}, []int{r, c})
	assert.Equal(t, 2.0, m.At(1, 2))

	tests := []struct {
		name, input string
	}{
		{"Empty", ""},
		{"NotNumeric", "0,x\n1,0\n"},
		{"Ragged", "0,1\n1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMatrixCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err), err.Error())
		})
	}
}

func TestReadMatrixJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []float64
	}{
		{"Dense", `{"matrix": [[0, 2], [2, 0]]}`, []float64{0, 2, 2, 0}},
		{"IndexEdges", `{"n": 2, "edges": [{"from": 0, "to": 1, "weight": 2}]}`, []float64{0, 2, 2, 0}},
		{"DirectedIndexEdges", `{"n": 2, "directed": true, "edges": [{"from": 0, "to": 1}]}`, []float64{0, 1, 0, 0}},
		{"NodeLink", `{"nodes": [{"id": "a"}, {"id": "b"}], "edges": [{"from": "a", "to": "b", "weight": 2}]}`, []float64{0, 2, 2, 0}},
		{"NoEdges", `{"n": 2}`, []float64{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ReadMatrixJSON(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.RawMatrix().Data)
		})
	}
}

func TestReadMatrixJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"Malformed", `{"matrix": [`, errors.ErrCodeInvalidFormat},
		{"Unknown", `{"rows": 2}`, errors.ErrCodeInvalidFormat},
		{"EdgeOutOfRange", `{"n": 2, "edges": [{"from": 0, "to": 5}]}`, errors.ErrCodeInvalidInput},
		{"Ragged", `{"matrix": [[0, 1], [1]]}`, errors.ErrCodeDimensionMismatch},
		{"UnknownNode", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`, errors.ErrCodeKeyNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMatrixJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), err.Error())
		})
	}
}

func TestReadEdgeList(t *testing.T) {
	m, err := ReadEdgeList(strings.NewReader("# ring\n0 1\n1 2 0.5\n\n2 0\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{
		0, 1, 1,
		1, 0, 0.5,
		1, 0.5, 0,
	}, m.RawMatrix().Data)

	for _, input := range []string{"", "0\n", "0 a\n", "0 1 w\n", "-1 0\n"} {
		_, err := ReadEdgeList(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestReadLabels(t *testing.T) {
	l, err := ReadLabels(strings.NewReader("a\n b \r\nc\n"))
	require.NoError(t, err)
	assert.Equal(t, hier.Labels{"a", "b", "c"}, l)

	_, err = ReadLabels(strings.NewReader("\n"))
	assert.Error(t, err)
}

func TestImportMatrix(t *testing.T) {
	hooks := recordIO(t)

	path := writeFile(t, "g.edges", "0 1 3\n")
	m, err := ImportMatrix(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.At(1, 0))

	_, err = ImportMatrix(writeFile(t, "g.mtx", ""))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnsupported, errors.GetCode(err))

	_, err = ImportMatrix(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.Len(t, hooks.events, 3)
	assert.Equal(t, ioEvent{"read", path, "matrix", nil}, hooks.events[0])
	assert.Error(t, hooks.events[2].err)
}

func TestImportTableAndModel(t *testing.T) {
	hooks := recordIO(t)

	tbl, err := ImportTable(writeFile(t, "nodes.csv", "x,y\n0,1\n2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	model, err := ImportModel(writeFile(t, "model.json",
		`{"covariance_type": "spherical", "means": [[0, 0], [1, 1]], "covariances": [[1], [2]]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, model.NComponents())

	_, err = ImportLabels(writeFile(t, "labels.txt", "a\nb\n"))
	require.NoError(t, err)

	var kinds []string
	for _, e := range hooks.events {
		kinds = append(kinds, e.kind)
	}
	assert.Equal(t, []string{"table", "model", "labels"}, kinds)
}

func TestExportMatrixRoundTrip(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{0, 0.25, 1e-9, 3, -1, 7})
	for _, name := range []string{"m.csv", "m.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, ExportMatrix(m, path))
			got, err := ImportMatrix(path)
			require.NoError(t, err)
			assert.True(t, mat.Equal(m, got))
		})
	}

	err := ExportMatrix(m, filepath.Join(t.TempDir(), "m.txt"))
	assert.Equal(t, errors.ErrCodeUnsupported, errors.GetCode(err))
}

func TestWriteMatrixCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatrixCSV(mat.NewDense(2, 2, []float64{0, 1.5, 1.5, 0}), &buf))
	assert.Equal(t, "0,1.5\n1.5,0\n", buf.String())
}

func TestExportFigure(t *testing.T) {
	hooks := recordIO(t)
	fig, err := plot.Heatmap(graph.Rows{{0, 1}, {1, 0}}, plot.HeatmapOptions{})
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "heat.svg")
	require.NoError(t, ExportFigure(fig, path, ""))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	bad := filepath.Join(dir, "heat.bmp")
	err = ExportFigure(fig, bad, "")
	assert.Equal(t, errors.ErrCodeUnsupported, errors.GetCode(err))
	assert.NoFileExists(t, bad)

	require.Len(t, hooks.events, 2)
	assert.NoError(t, hooks.events[0].err)
	assert.Error(t, hooks.events[1].err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "png", FormatFromPath("out/Plot.PNG", "svg"))
	assert.Equal(t, "svg", FormatFromPath("out/plot", "svg"))
}

func TestWriteArtifact(t *testing.T) {
	hooks := recordIO(t)
	dir := t.TempDir()

	require.NoError(t, WriteArtifact(filepath.Join(dir, "g.dot"), []byte("graph G {}")))
	err := WriteArtifact(filepath.Join(dir, "missing", "g.dot"), []byte("x"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.Len(t, hooks.events, 2)
	assert.NoError(t, hooks.events[0].err)
	assert.Error(t, hooks.events[1].err)
}
