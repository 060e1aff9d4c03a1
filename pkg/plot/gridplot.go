package plot

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/graph"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/render"
	"github.com/matzehuels/graphplot/pkg/transform"
)

// GridplotOptions configures Gridplot. The zero value is usable.
type GridplotOptions struct {
	Common `yaml:",inline"`

	// Labels names every graph in the legend, "0".."k-1" by default.
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty" toml:"labels,omitempty"`

	Transform transform.Method `json:"transform,omitempty" yaml:"transform,omitempty" toml:"transform,omitempty"`

	// Height of the square plot area in inches, 10 by default.
	Height float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`

	// Alpha is the marker opacity, 0.7 by default.
	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty" toml:"alpha,omitempty"`

	// Sizes is the marker area range in square points that edge weights
	// are mapped onto, (10, 200) by default.
	Sizes [2]float64 `json:"sizes,omitempty" yaml:"sizes,omitempty" toml:"sizes,omitempty"`

	Palette render.PaletteSpec `json:"-" yaml:"-" toml:"-"`

	// LegendName titles the legend, "Type" by default.
	LegendName string `json:"legend_name,omitempty" yaml:"legend_name,omitempty" toml:"legend_name,omitempty"`

	Inner             hier.Labels `json:"inner,omitempty" yaml:"inner,omitempty" toml:"inner,omitempty"`
	Outer             hier.Labels `json:"outer,omitempty" yaml:"outer,omitempty" toml:"outer,omitempty"`
	HierLabelFontSize float64     `json:"hier_label_fontsize,omitempty" yaml:"hier_label_fontsize,omitempty" toml:"hier_label_fontsize,omitempty"`
	TitlePad          float64     `json:"title_pad,omitempty" yaml:"title_pad,omitempty" toml:"title_pad,omitempty"`
	SortNodes         bool        `json:"sort_nodes,omitempty" yaml:"sort_nodes,omitempty" toml:"sort_nodes,omitempty"`
}

// SetDefaults fills unset fields with their defaults.
func (o *GridplotOptions) SetDefaults() {
	o.Common.setDefaults()
	if o.Height == 0 {
		o.Height = 10
	}
	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	if o.Sizes == [2]float64{} {
		o.Sizes = [2]float64{10, 200}
	}
	if o.LegendName == "" {
		o.LegendName = DefaultLegendName
	}
	if o.HierLabelFontSize == 0 {
		o.HierLabelFontSize = DefaultHierLabelFontSize
	}
}

// Validate checks options that do not depend on the data.
func (o *GridplotOptions) Validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	if err := errors.ValidatePositive("height", o.Height); err != nil {
		return err
	}
	if err := errors.ValidateUnit("alpha", o.Alpha); err != nil {
		return err
	}
	if o.Sizes[0] < 0 || o.Sizes[1] < o.Sizes[0] {
		return errors.New(errors.ErrCodeInvalidValue,
			"sizes must be a non-negative (min, max) pair, not (%v, %v)", o.Sizes[0], o.Sizes[1])
	}
	if err := errors.ValidatePositive("hier_label_fontsize", o.HierLabelFontSize); err != nil {
		return err
	}
	if err := o.Palette.Validate(); err != nil {
		return err
	}
	return o.Transform.Validate()
}

func (o *GridplotOptions) titlePad() float64 {
	if o.TitlePad > 0 {
		return o.TitlePad
	}
	if o.Inner != nil {
		return 1.5*o.FontScale + o.HierLabelFontSize + 30
	}
	return 1.5*o.FontScale + 15
}

// Gridplot overlays several graphs on the same nodes as a scatter of their
// nonzero entries. Entry (i, j) of graph k is a marker at row i, column j
// colored by the graph's label and sized by its weight.
func Gridplot(xs []graph.Source, opts GridplotOptions) (*render.Figure, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	labels := opts.Labels
	if labels == nil {
		labels = make([]string, len(xs))
		for i := range labels {
			labels[i] = strconv.Itoa(i)
		}
	}
	if len(labels) != len(xs) {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"got %d labels for %d graphs", len(labels), len(xs))
	}
	graphs, err := processGraphs(xs, opts.Inner, opts.Outer, opts.Transform, opts.SortNodes)
	if err != nil {
		return nil, err
	}
	spec := opts.Palette
	if spec.Name == "" && spec.Colors == nil && spec.Map == nil {
		spec.Name = render.DefaultPalette
	}
	colors, err := spec.Assign(labels)
	if err != nil {
		return nil, err
	}
	n, _ := graphs[0].Dims()

	return run("gridplot", n, opts.Common, func() (*render.Figure, error) {
		// Room for the legend on the right of the square plot.
		fig := render.NewFigure(opts.Height*1.25, opts.Height)
		ax := fig.AddAxes(render.Rect{X: 0.05, Y: 0.05, W: 0.72, H: 0.8})
		ax.Square = true
		ax.Hidden = true

		lo, hi := weightRange(graphs)
		sizeOf := func(w float64) float64 {
			if hi == lo {
				return (opts.Sizes[0] + opts.Sizes[1]) / 2
			}
			return opts.Sizes[0] + (w-lo)/(hi-lo)*(opts.Sizes[1]-opts.Sizes[0])
		}

		fig.Legend.Add(opts.LegendName)
		for k, g := range graphs {
			clr := render.WithAlpha(render.Desaturate(colors[labels[k]], paletteDesat), opts.Alpha)
			ax.Add(weightScatter(g, clr, sizeOf))
			fig.Legend.Add(labels[k], render.GlyphThumb{GlyphStyle: render.Glyph(clr, opts.Sizes[1]/2)})
		}
		if lo < hi {
			fig.Legend.Add("Weights")
			for _, w := range []float64{lo, (lo + hi) / 2, hi} {
				thumb := render.GlyphThumb{GlyphStyle: render.Glyph(color.Gray{Y: 60}, sizeOf(w))}
				fig.Legend.Add(strconv.FormatFloat(w, 'g', 3, 64), thumb)
			}
		}

		ax.SetXLim(0, float64(n+1))
		ax.SetYLim(0, float64(n+1))
		ax.InvertY()
		if opts.Title != "" {
			ax.Title = opts.Title
			ax.TitlePad = vg.Points(opts.titlePad())
		}
		if opts.Inner != nil {
			if err := plotGroups(ax, n, opts.Inner, opts.Outer, opts.HierLabelFontSize); err != nil {
				return nil, err
			}
		}
		return fig, nil
	})
}

// weightRange returns the smallest and largest positive entry over graphs.
func weightRange(graphs []*mat.Dense) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, g := range graphs {
		r, c := g.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if v := g.At(i, j); v > 0 {
					lo, hi = math.Min(lo, v), math.Max(hi, v)
				}
			}
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// weightScatter places a marker at (j+0.5, i+0.5) for every positive entry.
func weightScatter(g *mat.Dense, clr color.Color, size func(float64) float64) *plotter.Scatter {
	var pts plotter.XYs
	var weights []float64
	r, c := g.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := g.At(i, j); v > 0 {
				pts = append(pts, plotter.XY{X: float64(j) + 0.5, Y: float64(i) + 0.5})
				weights = append(weights, v)
			}
		}
	}
	return &plotter.Scatter{
		XYs: pts,
		GlyphStyleFunc: func(k int) draw.GlyphStyle {
			return render.Glyph(clr, size(weights[k]))
		},
		GlyphStyle: render.Glyph(clr, size(0)),
	}
}
