// Package table holds per-node tabular data.
//
// A [Table] is a set of equally long named columns read from CSV. Plots use
// it to look up node coordinates, hues and sizes by column name, the way a
// data frame is indexed by key.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/hier"
)

// Table is a column-oriented table of strings.
type Table struct {
	names []string
	cols  map[string][]string
	rows  int
}

// New builds a table from columns given in display order.
func New(names []string, cols [][]string) (*Table, error) {
	if len(names) != len(cols) {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"got %d column names for %d columns", len(names), len(cols))
	}
	t := &Table{cols: make(map[string][]string, len(names))}
	for i, name := range names {
		if _, dup := t.cols[name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidValue, "duplicate column %q", name)
		}
		if i == 0 {
			t.rows = len(cols[i])
		} else if len(cols[i]) != t.rows {
			return nil, errors.New(errors.ErrCodeDimensionMismatch,
				"column %q has %d rows, want %d", name, len(cols[i]), t.rows)
		}
		t.names = append(t.names, name)
		t.cols[name] = slices.Clone(cols[i])
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Names returns the column names in file order.
func (t *Table) Names() []string { return slices.Clone(t.names) }

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Labels returns a column as categorical labels.
func (t *Table) Labels(name string) (hier.Labels, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, t.missing(name)
	}
	return hier.Labels(slices.Clone(col)), nil
}

// Floats returns a column parsed as numbers.
func (t *Table) Floats(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, t.missing(name)
	}
	out := make([]float64, len(col))
	for i, s := range col {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidType, err,
				"column %q row %d is not numeric", name, i)
		}
		out[i] = v
	}
	return out, nil
}

// Numeric reports whether every value of the named column parses as a number.
func (t *Table) Numeric(name string) bool {
	col, ok := t.cols[name]
	return ok && hier.Labels(col).Numeric()
}

// NumericNames returns the names of the numeric columns in file order.
func (t *Table) NumericNames() []string {
	var out []string
	for _, name := range t.names {
		if t.Numeric(name) {
			out = append(out, name)
		}
	}
	return out
}

// Matrix stacks the named numeric columns into a rows×len(names) matrix.
func (t *Table) Matrix(names []string) (*mat.Dense, error) {
	if len(names) == 0 || t.rows == 0 {
		return nil, errors.New(errors.ErrCodeInvalidValue, "matrix needs at least one row and one column")
	}
	m := mat.NewDense(t.rows, len(names), nil)
	for j, name := range names {
		col, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		m.SetCol(j, col)
	}
	return m, nil
}

func (t *Table) missing(name string) error {
	return errors.New(errors.ErrCodeKeyNotFound,
		"%q is not a valid key, columns are {%s}", name, strings.Join(t.names, ", "))
}

// =============================================================================
// CSV
// =============================================================================

// ReadCSV decodes a table whose first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv has no header")
	}
	header := records[0]
	cols := make([][]string, len(header))
	for _, rec := range records[1:] {
		for j := range header {
			cols[j] = append(cols[j], rec[j])
		}
	}
	return New(header, cols)
}

// ReadCSVFile reads a table from a CSV file.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
