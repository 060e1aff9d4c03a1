package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/render"
)

func TestBracketCurve(t *testing.T) {
	require.Len(t, bracketCurve, bracketSamples)
	for i := range bracketSamples / 2 {
		assert.Equal(t, bracketCurve[i], bracketCurve[bracketSamples-1-i])
	}
	assert.Greater(t, bracketCurve[0], 19.0)
	assert.Less(t, bracketCurve[bracketSamples/2-1], -19.0)
}

func TestBrackets(t *testing.T) {
	locs, widths := []float64{1, 4}, []float64{1, 2}

	top := brackets(locs, widths, render.Top)
	require.Len(t, top, 2)
	assert.Equal(t, 0.0, top[0][0].X)
	assert.InDelta(t, 2.0, top[0][bracketSamples-1].X, 1e-12)
	assert.Equal(t, -bracketCurve[0], top[0][0].Y)
	assert.Equal(t, 2.0, top[1][0].X)
	assert.InDelta(t, 6.0, top[1][bracketSamples-1].X, 1e-12)

	left := brackets(locs, widths, render.Left)
	assert.Equal(t, bracketCurve[10], left[1][10].X)
	assert.Equal(t, 2.0, left[1][0].Y)
}

func TestTile(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b"}, tile(hier.Labels{"a", "b"}, 3))
	assert.Empty(t, tile(hier.Labels{"a"}, 0))
}

func TestPlotGroups(t *testing.T) {
	tests := []struct {
		name     string
		inner    hier.Labels
		outer    hier.Labels
		appended int
	}{
		{"InnerOnly", hier.Labels{"x", "x", "y", "y"}, nil, 2},
		{"TwoLevels", hier.Labels{"x", "x", "y", "y"}, hier.Labels{"L", "L", "L", "R"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig := render.NewFigure(6, 6)
			ax := fig.Subplot()
			ax.SetXLim(0, 4)
			ax.SetYLim(0, 4)
			require.NoError(t, plotGroups(ax, 4, tt.inner, tt.outer, 12))
			assert.Len(t, ax.Appended(), tt.appended)

			// Group boundaries must not widen the matrix range.
			assert.Equal(t, 0.0, ax.X.Min)
			assert.Equal(t, 4.0, ax.X.Max)

			text := drawnText(fig)
			assert.Contains(t, text, "x")
			assert.Contains(t, text, "y")
			if tt.outer != nil {
				assert.Contains(t, text, "L")
				assert.Contains(t, text, "R")
			}
		})
	}
}

func TestPlotGroupsResortsLabels(t *testing.T) {
	fig := render.NewFigure(6, 6)
	ax := fig.Subplot()
	require.NoError(t, plotGroups(ax, 5, hier.Labels{"b", "a", "b", "a", "b"}, nil, 12))

	top := ax.Appended()[0]
	labels := plottersOf[*render.MarginLabels](top)
	require.Len(t, labels, 1)
	assert.Equal(t, []string{"b", "a"}, labels[0].Names, "larger group first")
	assert.Equal(t, []float64{1.5, 4}, labels[0].Locs)

	lines := plottersOf[*render.Polylines](ax)
	require.Len(t, lines, 1)
	// One vertical and one horizontal boundary between the two groups.
	require.Len(t, lines[0].Lines, 2)
	assert.Equal(t, 3.0, lines[0].Lines[0][0].X)
	assert.Equal(t, 3.0, lines[0].Lines[1][0].Y)
}

func TestPlotGroupsLengthMismatch(t *testing.T) {
	fig := render.NewFigure(6, 6)
	err := plotGroups(fig.Subplot(), 4, hier.Labels{"a", "b"}, hier.Labels{"1"}, 12)
	assert.Error(t, err)
}
