package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/graph"
	"github.com/matzehuels/graphplot/pkg/hier"
)

// ring is a six node cycle with unit weights.
func ring() graph.Rows {
	rows := make(graph.Rows, 6)
	for i := range rows {
		rows[i] = make([]float64, 6)
		rows[i][(i+1)%6] = 1
		rows[i][(i+5)%6] = 1
	}
	return rows
}

func TestGridplot(t *testing.T) {
	fig, err := Gridplot([]graph.Source{twoBlocks(), ring()}, GridplotOptions{
		Common: Common{Title: "Layers"},
		Labels: []string{"blocks", "ring"},
	})
	require.NoError(t, err)
	require.Len(t, fig.Axes(), 1)

	ax := fig.Axes()[0]
	assert.True(t, ax.Square)
	assert.Equal(t, 7.0, ax.X.Max)
	assert.Empty(t, ax.Appended())

	scatters := plottersOf[*plotter.Scatter](ax)
	require.Len(t, scatters, 2)
	assert.Len(t, scatters[0].XYs, 14)
	assert.Len(t, scatters[1].XYs, 12)
	assert.Equal(t, plotter.XY{X: 2.5, Y: 0.5}, scatters[0].XYs[0])

	// The 4-5 edge is the heaviest and gets the largest marker.
	last := len(scatters[0].XYs) - 1
	assert.Greater(t, scatters[0].GlyphStyleFunc(last).Radius, scatters[0].GlyphStyleFunc(0).Radius)

	text := drawnText(fig)
	for _, want := range []string{"Layers", "Type", "blocks", "ring", "Weights"} {
		assert.Contains(t, text, want)
	}
}

func TestGridplotGroups(t *testing.T) {
	fig, err := Gridplot([]graph.Source{twoBlocks()}, GridplotOptions{
		Inner:      hier.Labels{"A", "B", "A", "B", "A", "B"},
		LegendName: "Graph",
	})
	require.NoError(t, err)
	ax := fig.Axes()[0]
	assert.Len(t, ax.Appended(), 2)

	text := drawnText(fig)
	assert.Contains(t, text, "Graph")
	assert.Contains(t, text, "0")
	assert.NotContains(t, text, "Type")
}

func TestGridplotErrors(t *testing.T) {
	small := graph.FromMatrix(mat.NewDense(2, 2, []float64{0, 1, 1, 0}))
	tests := []struct {
		name string
		xs   []graph.Source
		opts GridplotOptions
		code errors.Code
	}{
		{"NoGraphs", nil, GridplotOptions{}, errors.ErrCodeInvalidValue},
		{"LabelCount", []graph.Source{twoBlocks()}, GridplotOptions{Labels: []string{"a", "b"}}, errors.ErrCodeDimensionMismatch},
		{"NodeCount", []graph.Source{twoBlocks(), small}, GridplotOptions{}, errors.ErrCodeDimensionMismatch},
		{"Sizes", []graph.Source{twoBlocks()}, GridplotOptions{Sizes: [2]float64{50, 10}}, errors.ErrCodeInvalidValue},
		{"Alpha", []graph.Source{twoBlocks()}, GridplotOptions{Alpha: 2}, errors.ErrCodeInvalidValue},
		{"Height", []graph.Source{twoBlocks()}, GridplotOptions{Height: -1}, errors.ErrCodeInvalidValue},
		{"OuterWithoutInner", []graph.Source{twoBlocks()}, GridplotOptions{Outer: hier.Implicit(6)}, errors.ErrCodeInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Gridplot(tt.xs, tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), err.Error())
		})
	}
}

func TestWeightRange(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{0, 1, -3, 0})
	b := mat.NewDense(2, 2, []float64{0, 4, 2, 0})
	lo, hi := weightRange([]*mat.Dense{a, b})
	assert.Equal(t, []float64{1, 4}, []float64{lo, hi})

	lo, hi = weightRange([]*mat.Dense{mat.NewDense(1, 1, nil)})
	assert.Equal(t, []float64{0, 0}, []float64{lo, hi})
}
