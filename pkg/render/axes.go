package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Rect is a rectangle in figure fractions with its origin at the bottom left.
type Rect struct {
	X, Y, W, H float64
}

// Side names an edge of an axes.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

// Axes is a data area inside a figure. The embedded plot.Plot carries the
// axis ranges, scales, tick markers, labels and legend; Axes adds figure
// placement, titles above the data area and marginal axes appended to its
// sides.
//
// Data is drawn exactly inside the placement rectangle. Tick labels and axis
// labels extend outside of it, into the figure margins.
type Axes struct {
	*plot.Plot

	// Rect places the axes in figure fractions. Appended axes are carved out
	// of the same rectangle, shrinking the main data area.
	Rect Rect

	// Hidden suppresses axis lines, ticks and labels.
	Hidden bool

	// Square keeps the data area square, centering it within Rect.
	Square bool

	// Title is drawn TitlePad above the data area.
	Title      string
	TitlePad   vg.Length
	TitleStyle text.Style

	fig      *Figure
	style    Style
	plotters []plot.Plotter
	appended []appended
	placed   vg.Rectangle
}

type appended struct {
	side Side
	size float64
	pad  vg.Length
	ax   *Axes
}

func newAxes(fig *Figure, rect Rect, style Style) *Axes {
	p := plot.New()
	p.BackgroundColor = nil
	applyStyle(p, style)
	// Start with an empty range so Add sets it from data.
	p.X.Min, p.X.Max = math.Inf(1), math.Inf(-1)
	p.Y.Min, p.Y.Max = math.Inf(1), math.Inf(-1)
	return &Axes{
		Plot:     p,
		fig:      fig,
		Rect:     rect,
		style:    style,
		TitlePad: 6,
		TitleStyle: text.Style{
			Color:   color.Black,
			Font:    p.Title.TextStyle.Font,
			XAlign:  draw.XCenter,
			YAlign:  draw.YBottom,
			Handler: p.TextHandler,
		},
	}
}

// Add adds plotters to the axes, widening the axis ranges to cover every
// plot.DataRanger. Explicit limits set after Add take precedence.
func (a *Axes) Add(ps ...plot.Plotter) {
	for _, p := range ps {
		if r, ok := p.(plot.DataRanger); ok {
			xmin, xmax, ymin, ymax := r.DataRange()
			a.X.Min = math.Min(a.X.Min, xmin)
			a.X.Max = math.Max(a.X.Max, xmax)
			a.Y.Min = math.Min(a.Y.Min, ymin)
			a.Y.Max = math.Max(a.Y.Max, ymax)
		}
	}
	a.plotters = append(a.plotters, ps...)
}

// Plotters returns the plotters added so far, in drawing order.
func (a *Axes) Plotters() []plot.Plotter { return a.plotters }

// SetXLim fixes the horizontal data range.
func (a *Axes) SetXLim(lo, hi float64) { a.X.Min, a.X.Max = lo, hi }

// SetYLim fixes the vertical data range.
func (a *Axes) SetYLim(lo, hi float64) { a.Y.Min, a.Y.Max = lo, hi }

// InvertY flips the vertical axis so that Y.Min is drawn at the top.
func (a *Axes) InvertY() {
	a.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
}

// HideTicks removes tick marks and tick labels but keeps axis labels.
func (a *Axes) HideTicks() {
	a.X.Tick.Marker = plot.ConstantTicks(nil)
	a.Y.Tick.Marker = plot.ConstantTicks(nil)
	a.X.Tick.Length = 0
	a.Y.Tick.Length = 0
}

// Margin pads both axis ranges by frac of their extent on each side.
func (a *Axes) Margin(frac float64) {
	dx := (a.X.Max - a.X.Min) * frac
	dy := (a.Y.Max - a.Y.Min) * frac
	a.X.Min, a.X.Max = a.X.Min-dx, a.X.Max+dx
	a.Y.Min, a.Y.Max = a.Y.Min-dy, a.Y.Max+dy
}

// Append carves a new axes out of a's placement rectangle on the given side.
// size is a fraction of a's data extent in the stacking direction and pad
// the gap to the previous axes on that side. Successive appends on the
// same side stack outwards.
func (a *Axes) Append(side Side, size float64, pad vg.Length) *Axes {
	ax := newAxes(a.fig, Rect{}, a.style)
	ax.Hidden = true
	a.appended = append(a.appended, appended{side: side, size: size, pad: pad, ax: ax})
	return ax
}

// Appended returns the marginal axes in the order they were appended.
func (a *Axes) Appended() []*Axes {
	out := make([]*Axes, len(a.appended))
	for i, ap := range a.appended {
		out[i] = ap.ax
	}
	return out
}

// Figure returns the figure holding a.
func (a *Axes) Figure() *Figure { return a.fig }

// Placed returns the data rectangle computed by the most recent Draw.
func (a *Axes) Placed() vg.Rectangle { return a.placed }

// layout splits box between a's data area and its appended axes and returns
// the data area.
func (a *Axes) layout(box vg.Rectangle) vg.Rectangle {
	var padX, padY vg.Length
	var sizeX, sizeY float64
	for _, ap := range a.appended {
		switch ap.side {
		case Top, Bottom:
			padY += ap.pad
			sizeY += ap.size
		default:
			padX += ap.pad
			sizeX += ap.size
		}
	}

	size := box.Size()
	mw := (size.X - padX) / vg.Length(1+sizeX)
	mh := (size.Y - padY) / vg.Length(1+sizeY)
	if a.Square {
		s := min(mw, mh)
		mw, mh = s, s
	}

	var left, bottom vg.Length
	for _, ap := range a.appended {
		switch ap.side {
		case Left:
			left += ap.pad + vg.Length(ap.size)*mw
		case Bottom:
			bottom += ap.pad + vg.Length(ap.size)*mh
		}
	}
	tw := mw*vg.Length(1+sizeX) + padX
	th := mh*vg.Length(1+sizeY) + padY
	x0 := box.Min.X + (size.X-tw)/2 + left
	y0 := box.Min.Y + (size.Y-th)/2 + bottom
	main := vg.Rectangle{Min: vg.Point{X: x0, Y: y0}, Max: vg.Point{X: x0 + mw, Y: y0 + mh}}

	offs := map[Side]vg.Length{}
	for _, ap := range a.appended {
		var r vg.Rectangle
		switch ap.side {
		case Top:
			ext := vg.Length(ap.size) * mh
			lo := main.Max.Y + offs[Top] + ap.pad
			r = vg.Rectangle{Min: vg.Point{X: main.Min.X, Y: lo}, Max: vg.Point{X: main.Max.X, Y: lo + ext}}
			offs[Top] += ap.pad + ext
		case Bottom:
			ext := vg.Length(ap.size) * mh
			hi := main.Min.Y - offs[Bottom] - ap.pad
			r = vg.Rectangle{Min: vg.Point{X: main.Min.X, Y: hi - ext}, Max: vg.Point{X: main.Max.X, Y: hi}}
			offs[Bottom] += ap.pad + ext
		case Left:
			ext := vg.Length(ap.size) * mw
			hi := main.Min.X - offs[Left] - ap.pad
			r = vg.Rectangle{Min: vg.Point{X: hi - ext, Y: main.Min.Y}, Max: vg.Point{X: hi, Y: main.Max.Y}}
			offs[Left] += ap.pad + ext
		case Right:
			ext := vg.Length(ap.size) * mw
			lo := main.Max.X + offs[Right] + ap.pad
			r = vg.Rectangle{Min: vg.Point{X: lo, Y: main.Min.Y}, Max: vg.Point{X: lo + ext, Y: main.Max.Y}}
			offs[Right] += ap.pad + ext
		}
		ap.ax.placed = r
	}
	return main
}

// draw renders the axes into the data rectangle r of c.
func (a *Axes) draw(c draw.Canvas, r vg.Rectangle) {
	a.placed = r
	a.sanitize()
	dc := draw.Canvas{Canvas: c.Canvas, Rectangle: r}

	for _, p := range a.plotters {
		p.Plot(dc, a.Plot)
	}
	if !a.Hidden {
		a.Plot.Draw(a.frameCanvas(dc))
	}

	if a.Title != "" {
		pt := vg.Point{X: (r.Min.X + r.Max.X) / 2, Y: r.Max.Y + a.TitlePad}
		c.FillText(a.TitleStyle, pt, a.Title)
	}
}

// frameCanvas grows dc so that the plot's own axis decorations land outside
// the data rectangle.
func (a *Axes) frameCanvas(dc draw.Canvas) draw.Canvas {
	inner := a.Plot.DataCanvas(dc)
	grow := func(outer, in vg.Length) vg.Length { return max(in-outer, 0) }
	dl := grow(dc.Min.X, inner.Min.X)
	db := grow(dc.Min.Y, inner.Min.Y)
	dr := grow(inner.Max.X, dc.Max.X)
	dt := grow(inner.Max.Y, dc.Max.Y)
	return draw.Canvas{Canvas: dc.Canvas, Rectangle: vg.Rectangle{
		Min: vg.Point{X: dc.Min.X - dl, Y: dc.Min.Y - db},
		Max: vg.Point{X: dc.Max.X + dr, Y: dc.Max.Y + dt},
	}}
}

// sanitize replaces empty or degenerate ranges so normalization stays finite.
func (a *Axes) sanitize() {
	fix := func(ax *plot.Axis) {
		if math.IsInf(ax.Min, 0) || math.IsInf(ax.Max, 0) || math.IsNaN(ax.Min) || math.IsNaN(ax.Max) {
			ax.Min, ax.Max = 0, 1
		}
		if ax.Min == ax.Max {
			ax.Min -= 0.5
			ax.Max += 0.5
		}
	}
	fix(&a.X)
	fix(&a.Y)
}

// applyStyle copies the size presets of s onto p.
func applyStyle(p *plot.Plot, s Style) {
	regular := fontFor(s.FontSize)
	tick := fontFor(s.TickSize)

	p.Title.TextStyle.Font = regular
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font = regular
		ax.Tick.Label.Font = tick
		ax.LineStyle.Width = s.AxisWidth
		ax.Tick.LineStyle.Width = s.AxisWidth
		ax.Tick.Length = s.TickLength
		ax.Padding = 0
	}
	p.Legend.TextStyle.Font = fontFor(s.LegendSize)
	p.Legend.Top = true
}
