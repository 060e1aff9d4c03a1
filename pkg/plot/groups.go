package plot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/graphplot/pkg/fonts"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/render"
)

// =============================================================================
// Bracket Geometry
// =============================================================================

const (
	// bracketSamples is the number of points per bracket.
	bracketSamples = 1000

	// bracketSize is the depth of a bracket axes as a fraction of the
	// plot's data extent.
	bracketSize = 0.05
)

// bracketCurve is the bracket profile: tan sampled on (-π/2, π/2) shrunk by
// 0.05 at both ends, reversed and followed by itself. It dips at the center
// and rises steeply towards both ends.
var bracketCurve = func() []float64 {
	const half = bracketSamples / 2
	lo, hi := -math.Pi/2+0.05, math.Pi/2-0.05
	tan := make([]float64, half)
	for i := range tan {
		tan[i] = math.Tan(lo + (hi-lo)*float64(i)/float64(half-1))
	}
	curve := make([]float64, 0, bracketSamples)
	for i := half - 1; i >= 0; i-- {
		curve = append(curve, tan[i])
	}
	return append(curve, tan...)
}()

// brackets returns one bracket per group, spanning [loc-width, loc+width]
// along the axis. Top brackets plot the negated curve against position;
// left brackets plot the curve across the position.
func brackets(locs, widths []float64, side render.Side) []plotter.XYs {
	lines := make([]plotter.XYs, len(locs))
	for g, loc := range locs {
		lo, hi := loc-widths[g], loc+widths[g]
		line := make(plotter.XYs, bracketSamples)
		for i, c := range bracketCurve {
			x := lo + (hi-lo)*float64(i)/float64(bracketSamples-1)
			if side == render.Top {
				line[i] = plotter.XY{X: x, Y: -c}
			} else {
				line[i] = plotter.XY{X: c, Y: x}
			}
		}
		lines[g] = line
	}
	return lines
}

// tile repeats names reps times.
func tile(names hier.Labels, reps int) []string {
	out := make([]string, 0, len(names)*reps)
	for range reps {
		out = append(out, names...)
	}
	return out
}

// =============================================================================
// Group Annotation
// =============================================================================

// groupLineStyle is the dashed grey style of group boundaries.
func groupLineStyle() draw.LineStyle {
	const lw = 0.9
	return draw.LineStyle{
		Color:  render.WithAlpha(color.Gray{Y: 128}, 0.3),
		Width:  vg.Points(lw),
		Dashes: []vg.Length{vg.Points(3.7 * lw), vg.Points(1.6 * lw)},
	}
}

// plotGroups annotates ax, which shows an n×n matrix sorted by inner and
// outer labels, with group boundaries and brackets. The labels are passed
// unsorted; their sort order is recomputed here from the labels alone. outer
// may be nil, in which case only inner brackets are drawn. fontSize is the
// bracket label size in points.
func plotGroups(ax *render.Axes, n int, inner, outer hier.Labels, fontSize float64) error {
	plotOuter := outer != nil
	if !plotOuter {
		outer = hier.Implicit(len(inner))
	}
	perm, err := hier.SortIndices(nil, inner, outer, false)
	if err != nil {
		return err
	}
	inner = perm.ApplyLabels(inner)
	outer = perm.ApplyLabels(outer)

	freqs, err := hier.Freqs(inner, outer)
	if err != nil {
		return err
	}
	innerUnique, _ := hier.UniqueLike(inner)
	outerUnique, _ := hier.UniqueLike(outer)

	// Boundaries between inner groups, in both directions.
	sty := groupLineStyle()
	span := float64(n + 1)
	var lines []plotter.XYs
	cuts := freqs.InnerCumsum
	for _, c := range cuts[1 : len(cuts)-1] {
		x := float64(c)
		lines = append(lines,
			plotter.XYs{{X: x, Y: 0}, {X: x, Y: span}},
			plotter.XYs{{X: 0, Y: x}, {X: span, Y: x}},
		)
	}
	addFixed(ax, &render.Polylines{Lines: lines, LineStyle: sty})
	ax.Add(render.Border(0.001, sty))

	labelStyle := text.Style{
		Color:   color.Black,
		Font:    fonts.Regular(vg.Points(fontSize)),
		Handler: plot.DefaultTextHandler,
	}

	innerNames := tile(innerUnique, len(outerUnique))
	innerLocs, innerWidths := hier.Centers(freqs.Inner), hier.HalfWidths(freqs.Inner)
	top := ax.Append(render.Top, bracketSize, 0)
	left := ax.Append(render.Left, bracketSize, 0)
	drawBrackets(top, innerNames, innerLocs, innerWidths, render.Top, n, labelStyle, fontSize)
	drawBrackets(left, innerNames, innerLocs, innerWidths, render.Left, n, labelStyle, fontSize)

	if plotOuter {
		pad := vg.Length(0.35/30*fontSize) * vg.Inch
		outerLocs, outerWidths := hier.Centers(freqs.Outer), hier.HalfWidths(freqs.Outer)
		top2 := ax.Append(render.Top, bracketSize, pad)
		left2 := ax.Append(render.Left, bracketSize, pad)
		drawBrackets(top2, outerUnique, outerLocs, outerWidths, render.Top, n, labelStyle, fontSize)
		drawBrackets(left2, outerUnique, outerLocs, outerWidths, render.Left, n, labelStyle, fontSize)
	}
	return nil
}

// drawBrackets fills a bracket axes. Along the matrix axis the range is
// [0, n]; across it the range covers the curve with a 5% margin.
func drawBrackets(ax *render.Axes, names []string, locs, widths []float64, side render.Side, n int, sty text.Style, fontSize float64) {
	ax.Add(&render.Polylines{
		Lines:     brackets(locs, widths, side),
		LineStyle: draw.LineStyle{Color: color.Black, Width: render.CurrentStyle().LineWidth},
	})

	lo, hi := curveRange()
	labels := &render.MarginLabels{Side: side, Locs: locs, Names: names, Style: sty}
	if side == render.Top {
		ax.SetXLim(0, float64(n))
		ax.SetYLim(-hi, -lo)
		labels.Pad = vg.Points(5 + fontSize/4)
	} else {
		ax.SetYLim(0, float64(n))
		ax.InvertY()
		ax.SetXLim(lo, hi)
		labels.Pad = vg.Points(7)
	}
	ax.Add(labels)
}

// curveRange returns the extent of bracketCurve padded by 5%.
func curveRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, c := range bracketCurve {
		lo, hi = math.Min(lo, c), math.Max(hi, c)
	}
	m := (hi - lo) * 0.05
	return lo - m, hi + m
}

// addFixed adds plotters without widening the axes ranges.
func addFixed(ax *render.Axes, ps ...plot.Plotter) {
	x, y := ax.X, ax.Y
	ax.Add(ps...)
	ax.X.Min, ax.X.Max = x.Min, x.Max
	ax.Y.Min, ax.Y.Max = y.Min, y.Max
}
