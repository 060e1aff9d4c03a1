package nodelink

import (
	"context"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphplot/pkg/errors"
)

func triangle(directed bool) Network {
	red := color.NRGBA{R: 255, A: 128}
	return Network{
		Directed: directed,
		Nodes: []Node{
			{X: 0, Y: 0, Area: 50, Color: red, Label: "a"},
			{X: 2, Y: 0, Area: 50},
			{X: 1, Y: 1},
		},
		Edges: []Edge{
			{From: 0, To: 1, Color: red},
			{From: 1, To: 0, Color: red},
			{From: 1, To: 2},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(triangle(false), Options{Width: 4, Height: 4})

	assert.True(t, strings.HasPrefix(dot, "graph G {\n"))
	assert.Contains(t, dot, "layout=neato;")
	// Width 2 fills 4 inches, so the scale is 2 inches per unit.
	assert.Contains(t, dot, `0 [pos="0.0000,0.0000!", width=0.1108, height=0.1108, fillcolor="#ff000080", tooltip="a"];`)
	assert.Contains(t, dot, `2 [pos="2.0000,2.0000!"];`)
	assert.Contains(t, dot, `0 -- 1 [color="#ff000080"];`)
	assert.NotContains(t, dot, "1 -- 0", "undirected edges are listed once")
	assert.Contains(t, dot, "1 -- 2;")
}

func TestToDOTDirected(t *testing.T) {
	dot := ToDOT(triangle(true), Options{})
	assert.True(t, strings.HasPrefix(dot, "digraph G {\n"))
	assert.Contains(t, dot, "0 -> 1")
	assert.Contains(t, dot, "1 -> 0")
	assert.Contains(t, dot, "edge [penwidth=0.2000, arrowsize=0.3];")
}

func TestFit(t *testing.T) {
	scale, x0, y0 := fit([]Node{{X: -1, Y: 3}, {X: 1, Y: 4}}, 10, 5)
	assert.Equal(t, []float64{5, -1, 3}, []float64{scale, x0, y0})

	scale, _, _ = fit([]Node{{X: 1, Y: 1}}, 10, 5)
	assert.Equal(t, 1.0, scale)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#e41a1cff", hex(color.NRGBA{R: 228, G: 26, B: 28, A: 255}))
	assert.Equal(t, "#00000000", hex(color.NRGBA{}))
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	dot := ToDOT(triangle(false), Options{Width: 4, Height: 4})

	svg, err := RenderSVG(ctx, dot)
	require.NoError(t, err)
	assert.Contains(t, string(svg), `viewBox="0 0 `)

	raw, err := Render(ctx, dot, "dot")
	require.NoError(t, err)
	assert.Equal(t, dot, string(raw))

	_, err = Render(ctx, dot, "pdf")
	assert.Equal(t, errors.ErrCodeUnsupported, errors.GetCode(err))
	assert.False(t, SupportsFormat("pdf"))
	assert.True(t, SupportsFormat("PNG"))
}
