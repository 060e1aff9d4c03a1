package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Colorbar draws a vertical gradient for a colormap filling the data area,
// with ticks and labels on its right edge. Use it inside a hidden axes.
type Colorbar struct {
	ColorMap   palette.ColorMap
	TickStyle  text.Style
	LineStyle  draw.LineStyle
	TickLength vg.Length

	// Shrink is the fraction of the data height the bar fills, centered
	// vertically. Zero fills the whole height.
	Shrink float64
}

// NewColorbar returns a colorbar for cm styled with s.
func NewColorbar(cm palette.ColorMap, s Style) *Colorbar {
	return &Colorbar{
		ColorMap: cm,
		TickStyle: text.Style{
			Color:   color.Black,
			Font:    fontFor(s.TickSize),
			XAlign:  draw.XLeft,
			YAlign:  draw.YCenter,
			Handler: plot.DefaultTextHandler,
		},
		LineStyle:  draw.LineStyle{Color: color.Black, Width: s.AxisWidth},
		TickLength: s.TickLength * 0.6,
	}
}

// Plot implements plot.Plotter.
func (cb *Colorbar) Plot(c draw.Canvas, p *plot.Plot) {
	lo, hi := cb.ColorMap.Min(), cb.ColorMap.Max()
	if lo >= hi {
		return
	}
	if cb.Shrink > 0 && cb.Shrink < 1 {
		d := c.Size().Y * vg.Length(1-cb.Shrink) / 2
		c.Min.Y += d
		c.Max.Y -= d
	}
	bar := &plotter.ColorBar{ColorMap: cb.ColorMap, Vertical: true}
	bar.Plot(c, p)

	_, trY := p.Transforms(&c)
	for _, t := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if t.IsMinor() {
			continue
		}
		y := trY(t.Value)
		c.StrokeLine2(cb.LineStyle, c.Max.X, y, c.Max.X+cb.TickLength, y)
		c.FillText(cb.TickStyle, vg.Point{X: c.Max.X + cb.TickLength*2, Y: y}, t.Label)
	}
}

// DataRange implements plot.DataRanger.
func (cb *Colorbar) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, 1, cb.ColorMap.Min(), cb.ColorMap.Max()
}
