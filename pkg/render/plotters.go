package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// =============================================================================
// Line Collections
// =============================================================================

// Polylines draws many polylines in data coordinates with a shared style.
// When Colors is set, line i is stroked with Colors[i].
type Polylines struct {
	Lines  []plotter.XYs
	Colors []color.Color
	draw.LineStyle
}

// Plot implements plot.Plotter.
func (l *Polylines) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	sty := l.LineStyle
	for i, line := range l.Lines {
		pts := make([]vg.Point, len(line))
		for j, xy := range line {
			pts[j] = vg.Point{X: trX(xy.X), Y: trY(xy.Y)}
		}
		if l.Colors != nil {
			sty.Color = l.Colors[i]
		}
		c.StrokeLines(sty, c.ClipLinesXY(pts)...)
	}
}

// DataRange implements plot.DataRanger.
func (l *Polylines) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, line := range l.Lines {
		for _, xy := range line {
			xmin, xmax = math.Min(xmin, xy.X), math.Max(xmax, xy.X)
			ymin, ymax = math.Min(ymin, xy.Y), math.Max(ymax, xy.Y)
		}
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail implements plot.Thumbnailer.
func (l *Polylines) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(l.LineStyle, c.Min.X, y, c.Max.X, y)
}

// FrameLines draws polylines whose coordinates are fractions of the data
// area rather than data values.
type FrameLines struct {
	Lines []plotter.XYs
	draw.LineStyle
}

// Plot implements plot.Plotter.
func (l *FrameLines) Plot(c draw.Canvas, _ *plot.Plot) {
	for _, line := range l.Lines {
		pts := make([]vg.Point, len(line))
		for j, xy := range line {
			pts[j] = vg.Point{X: c.X(xy.X), Y: c.Y(xy.Y)}
		}
		c.StrokeLines(l.LineStyle, pts)
	}
}

// Border returns FrameLines tracing a rectangle inset by pad on every side.
func Border(pad float64, sty draw.LineStyle) *FrameLines {
	lo, hi := pad, 1-pad
	return &FrameLines{
		Lines: []plotter.XYs{
			{{X: lo, Y: lo}, {X: lo, Y: hi}},
			{{X: lo, Y: lo}, {X: hi, Y: lo}},
			{{X: hi, Y: lo}, {X: hi, Y: hi}},
			{{X: lo, Y: hi}, {X: hi, Y: hi}},
		},
		LineStyle: sty,
	}
}

// VLine is a vertical line at X spanning the full height of the data area.
type VLine struct {
	X float64
	draw.LineStyle
}

// Plot implements plot.Plotter.
func (l *VLine) Plot(c draw.Canvas, p *plot.Plot) {
	trX, _ := p.Transforms(&c)
	x := trX(l.X)
	c.StrokeLine2(l.LineStyle, x, c.Min.Y, x, c.Max.Y)
}

// DataRange implements plot.DataRanger. Only the horizontal range is
// affected.
func (l *VLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	return l.X, l.X, math.Inf(1), math.Inf(-1)
}

// Thumbnail implements plot.Thumbnailer.
func (l *VLine) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(l.LineStyle, c.Min.X, y, c.Max.X, y)
}

// =============================================================================
// Shapes
// =============================================================================

// Ellipse is a filled ellipse in data coordinates. Width and Height are full
// axis lengths before rotation; Angle rotates counter-clockwise in degrees.
// Ellipses do not widen the axis ranges.
type Ellipse struct {
	Center        plotter.XY
	Width, Height float64
	Angle         float64
	Color         color.Color

	// Segments is the number of polygon vertices; zero means 100.
	Segments int
}

// Points returns the ellipse outline in data coordinates.
func (e *Ellipse) Points() plotter.XYs {
	n := e.Segments
	if n <= 0 {
		n = 100
	}
	rad := e.Angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	a, b := e.Width/2, e.Height/2
	pts := make(plotter.XYs, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n)
		x, y := a*math.Cos(t), b*math.Sin(t)
		pts[i] = plotter.XY{
			X: e.Center.X + x*cos - y*sin,
			Y: e.Center.Y + x*sin + y*cos,
		}
	}
	return pts
}

// Plot implements plot.Plotter.
func (e *Ellipse) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	outline := e.Points()
	pts := make([]vg.Point, len(outline))
	for i, xy := range outline {
		pts[i] = vg.Point{X: trX(xy.X), Y: trY(xy.Y)}
	}
	c.FillPolygon(e.Color, c.ClipPolygonXY(pts))
}

// =============================================================================
// Text
// =============================================================================

// MarginLabels writes labels next to one edge of the data area, positioned
// at data coordinates along that edge. Top labels are centered Pad above the
// top edge; Left labels are right-aligned Pad left of the left edge.
type MarginLabels struct {
	Side  Side
	Locs  []float64
	Names []string
	Pad   vg.Length
	Style text.Style
}

// Plot implements plot.Plotter.
func (m *MarginLabels) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	sty := m.Style
	for i, loc := range m.Locs {
		if i >= len(m.Names) || m.Names[i] == "" {
			continue
		}
		var pt vg.Point
		switch m.Side {
		case Top:
			sty.XAlign, sty.YAlign = draw.XCenter, draw.YCenter
			pt = vg.Point{X: trX(loc), Y: c.Max.Y + m.Pad}
		case Bottom:
			sty.XAlign, sty.YAlign = draw.XCenter, draw.YTop
			pt = vg.Point{X: trX(loc), Y: c.Min.Y - m.Pad}
		case Left:
			sty.XAlign, sty.YAlign = draw.XRight, draw.YCenter
			pt = vg.Point{X: c.Min.X - m.Pad, Y: trY(loc)}
		case Right:
			sty.XAlign, sty.YAlign = draw.XLeft, draw.YCenter
			pt = vg.Point{X: c.Max.X + m.Pad, Y: trY(loc)}
		}
		c.FillText(sty, pt, m.Names[i])
	}
}

// =============================================================================
// Legend Thumbnails
// =============================================================================

// GlyphThumb draws a single glyph as a legend thumbnail.
type GlyphThumb struct {
	draw.GlyphStyle
}

// Thumbnail implements plot.Thumbnailer.
func (g GlyphThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyphNoClip(g.GlyphStyle, c.Center())
}

// BoxThumb fills the thumbnail with a color.
type BoxThumb struct {
	Color color.Color
}

// Thumbnail implements plot.Thumbnailer.
func (b BoxThumb) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.Color, pts)
}

// Glyph returns a filled circle glyph style covering area square points,
// the way scatter marker sizes are usually specified.
func Glyph(clr color.Color, area float64) draw.GlyphStyle {
	return draw.GlyphStyle{
		Color:  clr,
		Radius: vg.Points(math.Sqrt(math.Max(area, 0) / math.Pi)),
		Shape:  draw.CircleGlyph{},
	}
}
