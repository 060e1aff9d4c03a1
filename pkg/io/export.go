package io

import (
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
	"github.com/matzehuels/graphplot/pkg/observability"
	"github.com/matzehuels/graphplot/pkg/render"
)

// FormatFromPath returns the output format implied by the extension of
// path, or fallback when path has none.
func FormatFromPath(path, fallback string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return fallback
	}
	return ext
}

// ExportFigure renders fig and writes it to path. An empty format is taken
// from the extension of path. A failed render leaves no file behind.
func ExportFigure(fig *render.Figure, path, format string) error {
	if format == "" {
		format = FormatFromPath(path, "svg")
	}
	data, err := fig.Encode(format)
	if err != nil {
		observability.IO().OnWrite(path, 0, err)
		return err
	}
	return WriteArtifact(path, data)
}

// WriteArtifact writes rendered bytes to path.
func WriteArtifact(path string, data []byte) (err error) {
	defer func() {
		n := len(data)
		if err != nil {
			n = 0
		}
		observability.IO().OnWrite(path, n, err)
	}()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteMatrixCSV writes m as comma separated rows using the shortest
// representation of every value.
func WriteMatrixCSV(m mat.Matrix, w io.Writer) error {
	r, c := m.Dims()
	cw := csv.NewWriter(w)
	rec := make([]string, c)
	for i := range r {
		for j := range c {
			rec[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatrixJSON writes m as {"matrix": [[...]]}, readable by
// [ReadMatrixJSON].
func WriteMatrixJSON(m mat.Matrix, w io.Writer) error {
	r, c := m.Dims()
	doc := matrixFile{Matrix: make([][]float64, r)}
	for i := range r {
		doc.Matrix[i] = make([]float64, c)
		for j := range c {
			doc.Matrix[i][j] = m.At(i, j)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportMatrix writes m to path as CSV or JSON, chosen by extension.
func ExportMatrix(m mat.Matrix, path string) (err error) {
	var cw countingWriter
	defer func() { observability.IO().OnWrite(path, cw.n, err) }()

	var write func(mat.Matrix, io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		write = WriteMatrixCSV
	case ".json":
		write = WriteMatrixJSON
	default:
		return errors.New(errors.ErrCodeUnsupported, "matrix output must end in .csv or .json, not %q", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	cw.w = f
	return write(m, &cw)
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
