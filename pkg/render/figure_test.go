package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/recorder"

	"github.com/matzehuels/graphplot/pkg/errors"
)

// drawnText records fig and returns every string it drew.
func drawnText(fig *Figure) []string {
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

func TestSubplotsGrid(t *testing.T) {
	fig := NewFigure(10, 10)
	grid := fig.Subplots(2, 3)
	require.Len(t, grid, 2)
	require.Len(t, grid[0], 3)
	assert.Len(t, fig.Axes(), 6)

	top, bottom := grid[0][0].Rect, grid[1][0].Rect
	assert.Greater(t, top.Y, bottom.Y, "row 0 is the top row")
	assert.InDelta(t, marginTop, top.Y+top.H, 1e-9)
	assert.InDelta(t, marginBottom, bottom.Y, 1e-9)

	right := grid[0][2].Rect
	assert.InDelta(t, marginRight, right.X+right.W, 1e-9)
	assert.InDelta(t, top.W, right.W, 1e-9)
}

func TestAppendLayout(t *testing.T) {
	fig := NewFigure(10, 10)
	ax := fig.AddAxes(Rect{X: 0, Y: 0, W: 1, H: 1})
	top := ax.Append(Top, 0.05, 0)
	left := ax.Append(Left, 0.05, 0)
	outer := ax.Append(Top, 0.05, 10)
	assert.Len(t, ax.Appended(), 3)

	box := vg.Rectangle{Max: vg.Point{X: 735, Y: 735}}
	main := ax.layout(box)

	// 735 = 1.05*w for the width, 735 - 10 = 1.10*h for the height.
	assert.InDelta(t, 700, float64(main.Size().X), 1e-9)
	assert.InDelta(t, 725/1.10, float64(main.Size().Y), 1e-9)

	assert.InDelta(t, float64(main.Max.Y), float64(top.placed.Min.Y), 1e-9)
	assert.InDelta(t, float64(main.Size().Y)*0.05, float64(top.placed.Size().Y), 1e-9)
	assert.InDelta(t, float64(top.placed.Max.Y)+10, float64(outer.placed.Min.Y), 1e-9)
	assert.InDelta(t, float64(main.Min.X), float64(left.placed.Max.X), 1e-9)
	assert.Equal(t, main.Min.Y, left.placed.Min.Y)
	assert.Equal(t, main.Max.X, top.placed.Max.X)
	assert.InDelta(t, 735, float64(outer.placed.Max.Y), 1e-9)
	assert.InDelta(t, 0, float64(left.placed.Min.X), 1e-9)
}

func TestSquareLayout(t *testing.T) {
	fig := NewFigure(10, 5)
	ax := fig.AddAxes(Rect{W: 1, H: 1})
	ax.Square = true
	main := ax.layout(vg.Rectangle{Max: vg.Point{X: 200, Y: 100}})
	assert.Equal(t, main.Size().X, main.Size().Y)
	assert.InDelta(t, 50, float64(main.Min.X), 1e-9)
}

func TestFigureDrawsTitlesAndLegend(t *testing.T) {
	fig := NewFigure(6, 4)
	fig.Title = "Overview"
	ax := fig.Subplot()
	ax.Title = "Panel"
	ax.X.Label.Text = "Component"

	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	require.NoError(t, err)
	ax.Add(line)
	fig.Legend.Add("Type")
	fig.Legend.Add("a", GlyphThumb{Glyph(color.Black, 20)})

	text := drawnText(fig)
	for _, want := range []string{"Overview", "Panel", "Component", "Type", "a"} {
		assert.Contains(t, text, want)
	}
}

func TestHiddenAxesDrawNoTicks(t *testing.T) {
	fig := NewFigure(4, 4)
	ax := fig.Subplot()
	ax.Hidden = true
	ax.X.Label.Text = "hidden label"
	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 10, Y: 10}})
	require.NoError(t, err)
	ax.Add(line)

	assert.NotContains(t, drawnText(fig), "hidden label")
	assert.Equal(t, 0.0, ax.X.Min)
	assert.Equal(t, 10.0, ax.X.Max)
}

func TestEncode(t *testing.T) {
	fig := NewFigure(2, 2)
	ax := fig.Subplot()
	ax.Add(&VLine{X: 1, LineStyle: draw.LineStyle{Color: color.Black, Width: 1}})

	svg, err := fig.Encode("svg")
	require.NoError(t, err)
	assert.True(t, bytes.Contains(svg, []byte("<svg")))

	png, err := fig.Encode(".PNG")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	fig.DPI = 50
	small, err := fig.Encode("png")
	require.NoError(t, err)
	assert.Less(t, len(small), len(png))

	_, err = fig.Encode("bmp")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnsupported, errors.GetCode(err))
	assert.True(t, strings.Contains(err.Error(), "svg"))
}

func TestEllipsePoints(t *testing.T) {
	e := &Ellipse{Center: plotter.XY{X: 1, Y: 2}, Width: 4, Height: 2, Angle: 90, Segments: 4}
	pts := e.Points()
	require.Len(t, pts, 4)
	// Rotated by 90 degrees the long axis is vertical.
	assert.InDelta(t, 1, pts[0].X, 1e-9)
	assert.InDelta(t, 4, pts[0].Y, 1e-9)
	assert.InDelta(t, 0, pts[1].X, 1e-9)
	assert.InDelta(t, 2, pts[1].Y, 1e-9)
}

func TestPolylinesRange(t *testing.T) {
	p := &Polylines{Lines: []plotter.XYs{
		{{X: 0, Y: -1}, {X: 2, Y: 3}},
		{{X: -5, Y: 0}},
	}}
	xmin, xmax, ymin, ymax := p.DataRange()
	assert.Equal(t, []float64{-5, 2, -1, 3}, []float64{xmin, xmax, ymin, ymax})
}

func TestMarginLabelsSkipBlank(t *testing.T) {
	fig := NewFigure(4, 4)
	ax := fig.Subplot()
	ax.Hidden = true
	ax.SetXLim(0, 3)
	ax.SetYLim(0, 1)
	ax.Add(&MarginLabels{
		Side:  Top,
		Locs:  []float64{0.5, 1.5, 2.5},
		Names: []string{"A", "", "C"},
		Style: ax.X.Tick.Label,
	})
	text := drawnText(fig)
	assert.Contains(t, text, "A")
	assert.Contains(t, text, "C")
	assert.NotContains(t, text, "")
}
