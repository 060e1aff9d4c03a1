package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/hier"
)

const nodes = `x,y,community,degree
0.5, 1.0, a, 3
1.5, -2, b, 1
2, 0, a, 7
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(nodes))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"x", "y", "community", "degree"}, tbl.Names())

	xs, err := tbl.Floats("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2}, xs)

	comm, err := tbl.Labels("community")
	require.NoError(t, err)
	assert.Equal(t, hier.Labels{"a", "b", "a"}, comm)

	assert.True(t, tbl.Numeric("degree"))
	assert.False(t, tbl.Numeric("community"))
	assert.False(t, tbl.Numeric("missing"))
}

func TestMissingKey(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(nodes))
	require.NoError(t, err)

	_, err = tbl.Floats("z")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeKeyNotFound, errors.GetCode(err))
	assert.Contains(t, err.Error(), "community")

	_, err = tbl.Labels("z")
	assert.True(t, errors.Is(err, errors.ErrCodeKeyNotFound))
}

func TestFloatsRejectsText(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(nodes))
	require.NoError(t, err)
	_, err = tbl.Floats("community")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidType, errors.GetCode(err))
}

func TestReadCSVErrors(t *testing.T) {
	for name, src := range map[string]string{
		"Empty":  "",
		"Ragged": "a,b\n1,2\n3\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(src))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
		})
	}

	_, err := ReadCSV(strings.NewReader("a,a\n1,2\n"))
	assert.Equal(t, errors.ErrCodeInvalidValue, errors.GetCode(err))
}

func TestNewCopiesColumns(t *testing.T) {
	col := []string{"1", "2"}
	tbl, err := New([]string{"v"}, [][]string{col})
	require.NoError(t, err)
	col[0] = "9"
	got, _ := tbl.Labels("v")
	assert.Equal(t, hier.Labels{"1", "2"}, got)

	_, err = New([]string{"a", "b"}, [][]string{{"1"}, {"1", "2"}})
	assert.Equal(t, errors.ErrCodeDimensionMismatch, errors.GetCode(err))
}

func TestMatrix(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(nodes))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "degree"}, tbl.NumericNames())

	m, err := tbl.Matrix([]string{"degree", "x"})
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, []int{3, 2}, []int{r, c})
	assert.Equal(t, []float64{3, 0.5, 1, 1.5, 7, 2}, m.RawMatrix().Data)

	_, err = tbl.Matrix([]string{"community"})
	assert.Equal(t, errors.ErrCodeInvalidType, errors.GetCode(err))
	_, err = tbl.Matrix(nil)
	assert.Equal(t, errors.ErrCodeInvalidValue, errors.GetCode(err))
}
