package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/render"
	"github.com/matzehuels/graphplot/pkg/table"
)

// hexagon places six nodes on a unit circle.
var hexX, hexY = []float64{1, 0.5, -0.5, -1, -0.5, 0.5}, []float64{0, 0.87, 0.87, 0, -0.87, -0.87}

func TestNetworkplot(t *testing.T) {
	fig, err := Networkplot(twoBlocks(), NetworkplotOptions{
		Common: Common{Title: "Network"},
		X:      hexX,
		Y:      hexY,
		Hue:    hier.Labels{"A", "B", "A", "B", "A", "B"},
		Legend: true,
	})
	require.NoError(t, err)
	ax := fig.Axes()[0]

	edges := plottersOf[*render.Polylines](ax)
	require.Len(t, edges, 1)
	require.Len(t, edges[0].Lines, 14)
	assert.Equal(t, plotter.XYs{{X: 1, Y: 0}, {X: -0.5, Y: 0.87}}, edges[0].Lines[0])

	// Edges are listed row by row: 0-2, 0-4, 1-3, ... and 4-5 is the 11th.
	require.Len(t, edges[0].Colors, 14)
	assert.Equal(t, edges[0].Colors[0], edges[0].Colors[1])
	assert.NotEqual(t, edges[0].Colors[0], edges[0].Colors[2])
	assert.Equal(t, edges[0].Colors[0], edges[0].Colors[10], "edge 4-5 takes the source hue")

	nodes := plottersOf[*plotter.Scatter](ax)
	require.Len(t, nodes, 1)
	assert.Len(t, nodes[0].XYs, 6)

	text := drawnText(fig)
	assert.Contains(t, text, "Network")
	assert.Contains(t, text, "A")
	assert.Contains(t, text, "B")
}

func TestNetworkplotTargetHue(t *testing.T) {
	fig, err := Networkplot(twoBlocks(), NetworkplotOptions{
		X:       hexX,
		Y:       hexY,
		Hue:     hier.Labels{"A", "B", "A", "B", "A", "B"},
		EdgeHue: EdgeHueTarget,
	})
	require.NoError(t, err)
	edges := plottersOf[*render.Polylines](fig.Axes()[0])[0]
	assert.Equal(t, edges.Colors[2], edges.Colors[10])
	assert.NotContains(t, drawnText(fig), "A", "legend is off by default")
}

func TestNetworkplotNodeData(t *testing.T) {
	data, err := table.New(
		[]string{"x", "y", "block", "weight"},
		[][]string{
			{"1", "0.5", "-0.5", "-1", "-0.5", "0.5"},
			{"0", "0.87", "0.87", "0", "-0.87", "-0.87"},
			{"1", "2", "1", "2", "1", "2"},
			{"1", "1", "1", "2", "2", "3"},
		})
	require.NoError(t, err)

	fig, err := Networkplot(twoBlocks(), NetworkplotOptions{
		NodeData:    data,
		XKey:        "x",
		YKey:        "y",
		HueKey:      "block",
		NodeSizeKey: "weight",
		NodeSizes:   [2]float64{10, 50},
	})
	require.NoError(t, err)
	nodes := plottersOf[*plotter.Scatter](fig.Axes()[0])
	require.Len(t, nodes, 1)
	assert.Equal(t, plotter.XY{X: -1, Y: 0}, nodes[0].XYs[3])
	assert.Less(t, nodes[0].GlyphStyleFunc(0).Radius, nodes[0].GlyphStyleFunc(5).Radius)
}

func TestNetworkplotPageRank(t *testing.T) {
	fig, err := Networkplot(twoBlocks(), NetworkplotOptions{X: hexX, Y: hexY, SizeBy: SizeByPageRank})
	require.NoError(t, err)
	nodes := plottersOf[*plotter.Scatter](fig.Axes()[0])[0]
	// Nodes 4 and 5 have the most edges.
	assert.Less(t, nodes.GlyphStyleFunc(0).Radius, nodes.GlyphStyleFunc(4).Radius)
}

func TestNetworkplotOnAxes(t *testing.T) {
	fig := render.NewFigure(4, 4)
	ax := fig.Subplot()
	got, err := Networkplot(twoBlocks(), NetworkplotOptions{X: hexX, Y: hexY, Axes: ax})
	require.NoError(t, err)
	assert.Same(t, fig, got)
	assert.NotEmpty(t, ax.Plotters())
}

func TestNetworkplotErrors(t *testing.T) {
	data, err := table.New([]string{"x", "y"}, [][]string{
		{"0", "1", "2", "3", "4", "5"},
		{"0", "1", "2", "3", "4", "5"},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		opts NetworkplotOptions
		code errors.Code
	}{
		{"MixedPositions", NetworkplotOptions{X: hexX, YKey: "y", NodeData: data}, errors.ErrCodeInvalidType},
		{"MissingPositions", NetworkplotOptions{}, errors.ErrCodeInvalidType},
		{"SlicesWithData", NetworkplotOptions{X: hexX, Y: hexY, NodeData: data}, errors.ErrCodeInvalidType},
		{"SlicesWithHueKey", NetworkplotOptions{X: hexX, Y: hexY, HueKey: "x"}, errors.ErrCodeInvalidType},
		{"KeysWithoutData", NetworkplotOptions{XKey: "x", YKey: "y"}, errors.ErrCodeInvalidValue},
		{"KeysWithHueSlice", NetworkplotOptions{XKey: "x", YKey: "y", NodeData: data, Hue: hier.Implicit(6)}, errors.ErrCodeInvalidType},
		{"UnknownKey", NetworkplotOptions{XKey: "x", YKey: "z", NodeData: data}, errors.ErrCodeKeyNotFound},
		{"ShortX", NetworkplotOptions{X: hexX[:3], Y: hexY}, errors.ErrCodeDimensionMismatch},
		{"RangeAndMap", NetworkplotOptions{X: hexX, Y: hexY, NodeSizes: [2]float64{1, 2}, NodeSizeMap: map[string]float64{"1": 3}}, errors.ErrCodeInvalidType},
		{"PageRankAndSizes", NetworkplotOptions{X: hexX, Y: hexY, NodeSize: hexX, SizeBy: SizeByPageRank}, errors.ErrCodeInvalidType},
		{"SizeBy", NetworkplotOptions{X: hexX, Y: hexY, SizeBy: "degree"}, errors.ErrCodeInvalidValue},
		{"EdgeHue", NetworkplotOptions{X: hexX, Y: hexY, EdgeHue: "both"}, errors.ErrCodeInvalidValue},
		{"NodeAlpha", NetworkplotOptions{X: hexX, Y: hexY, NodeAlpha: 1.5}, errors.ErrCodeInvalidValue},
		{"MissingSize", NetworkplotOptions{X: hexX, Y: hexY, NodeSize: hexX, NodeSizeMap: map[string]float64{"1": 3}}, errors.ErrCodeKeyNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Networkplot(twoBlocks(), tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), err.Error())
		})
	}
}

func TestMarkerSizes(t *testing.T) {
	o := NetworkplotOptions{NodeSizes: [2]float64{10, 30}}
	got, err := o.markerSizes([]float64{1, 2, 3}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, got)

	got, err = o.markerSizes([]float64{4, 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 20}, got)

	got, err = o.markerSizes(nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{markerArea(), markerArea()}, got)

	o = NetworkplotOptions{NodeSizeMap: map[string]float64{"1": 5, "2.5": 7}}
	got, err = o.markerSizes([]float64{2.5, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 5}, got)
}

func TestNetworkGraph(t *testing.T) {
	net, err := NetworkGraph(twoBlocks(), NetworkplotOptions{
		X:         hexX,
		Y:         hexY,
		Hue:       hier.Labels{"A", "B", "A", "B", "A", "B"},
		NodeSize:  []float64{1, 1, 1, 1, 2, 2},
		NodeSizes: [2]float64{10, 40},
	})
	require.NoError(t, err)
	assert.False(t, net.Directed)
	require.Len(t, net.Nodes, 6)
	assert.Len(t, net.Edges, 14)

	assert.Equal(t, -1.0, net.Nodes[3].X)
	assert.Equal(t, "B", net.Nodes[3].Label)
	assert.Equal(t, 10.0, net.Nodes[0].Area)
	assert.Equal(t, 40.0, net.Nodes[5].Area)
	assert.Equal(t, net.Nodes[0].Color, net.Nodes[2].Color)
	assert.NotEqual(t, net.Nodes[0].Color, net.Nodes[1].Color)

	directed := twoBlocks()
	directed[0][2] = 0
	net, err = NetworkGraph(directed, NetworkplotOptions{X: hexX, Y: hexY})
	require.NoError(t, err)
	assert.True(t, net.Directed)
	assert.Len(t, net.Edges, 13)
	assert.NotNil(t, net.Edges[0].Color)
}
