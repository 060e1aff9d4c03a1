package plot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/recorder"

	"github.com/matzehuels/graphplot/pkg/graph"
	"github.com/matzehuels/graphplot/pkg/render"
)

// drawnText records fig and returns every string it drew.
func drawnText(fig *render.Figure) []string {
	rec := new(recorder.Canvas)
	fig.Draw(draw.NewCanvas(rec, fig.Width, fig.Height))
	var out []string
	for _, a := range rec.Actions {
		if fs, ok := a.(*recorder.FillString); ok {
			out = append(out, fs.String)
		}
	}
	return out
}

// plottersOf returns the plotters of type T added to ax.
func plottersOf[T plot.Plotter](ax *render.Axes) []T {
	var out []T
	for _, p := range ax.Plotters() {
		if v, ok := p.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// twoBlocks is a six node graph with two dense blocks {0, 2, 4} and
// {1, 3, 5} joined by the edge 4-5 of weight 2.
func twoBlocks() graph.Rows {
	return graph.Rows{
		{0, 0, 1, 0, 1, 0},
		{0, 0, 0, 1, 0, 1},
		{1, 0, 0, 0, 1, 0},
		{0, 1, 0, 0, 0, 1},
		{1, 0, 1, 0, 0, 2},
		{0, 1, 0, 1, 2, 0},
	}
}

func count(vals []string, v string) int {
	n := 0
	for _, s := range vals {
		if s == v {
			n++
		}
	}
	return n
}
