package plot

import (
	"image/color"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/render"
)

// Degree directions.
const (
	DirectionOut = "out"
	DirectionIn  = "in"
)

// Directions lists the accepted DegreeplotOptions.Direction values.
var Directions = []string{DirectionOut, DirectionIn}

// DistOptions holds the settings shared by Degreeplot and Edgeplot.
type DistOptions struct {
	Common `yaml:",inline"`

	// Labels splits the values into one distribution per category.
	Labels hier.Labels `json:"labels,omitempty" yaml:"labels,omitempty" toml:"labels,omitempty"`

	// FigSize defaults to 10×5 inches.
	FigSize FigSize `json:"figsize" yaml:"figsize" toml:"figsize"`

	// Palette names the qualitative palette, Set1 by default.
	Palette string `json:"palette,omitempty" yaml:"palette,omitempty" toml:"palette,omitempty"`
}

func (o *DistOptions) setDefaults(title string) {
	o.Common.setDefaults()
	if o.Title == "" {
		o.Title = title
	}
	o.FigSize = o.FigSize.orDefault(10, 5)
	if o.Palette == "" {
		o.Palette = render.DefaultPalette
	}
}

func (o *DistOptions) validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	return o.FigSize.validate()
}

// DegreeplotOptions configures Degreeplot.
type DegreeplotOptions struct {
	DistOptions `yaml:",inline"`

	// Direction is "out" (nonzero entries per column) or "in" (per row).
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
}

// SetDefaults fills unset fields with their defaults.
func (o *DegreeplotOptions) SetDefaults() {
	o.DistOptions.setDefaults("Degree plot")
	if o.Direction == "" {
		o.Direction = DirectionOut
	}
}

// Validate checks options that do not depend on the data.
func (o *DegreeplotOptions) Validate() error {
	if err := o.DistOptions.validate(); err != nil {
		return err
	}
	return errors.ValidateOneOf("direction", o.Direction, Directions)
}

// EdgeplotOptions configures Edgeplot.
type EdgeplotOptions struct {
	DistOptions `yaml:",inline"`

	// NonZero drops zero weights before plotting.
	NonZero bool `json:"nonzero,omitempty" yaml:"nonzero,omitempty" toml:"nonzero,omitempty"`
}

// SetDefaults fills unset fields with their defaults.
func (o *EdgeplotOptions) SetDefaults() { o.DistOptions.setDefaults("Edge plot") }

// Validate checks options that do not depend on the data.
func (o *EdgeplotOptions) Validate() error { return o.DistOptions.validate() }

// Degreeplot plots the cumulative distribution of node degrees, counted as
// the number of nonzero entries per row or column.
func Degreeplot(x *mat.Dense, opts DegreeplotOptions) (*render.Figure, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if x == nil {
		return nil, errors.New(errors.ErrCodeInvalidValue, "graph is required")
	}
	r, c := x.Dims()
	degrees := nonzeroCounts(x, r, c, opts.Direction == DirectionOut)
	if err := checkLabels("labels", opts.Labels, len(degrees)); err != nil {
		return nil, err
	}
	return distplot(degrees, opts.Labels, "degreeplot", "Node degree", &opts.DistOptions)
}

// nonzeroCounts counts nonzero entries per row, or per column when byColumn
// is set.
func nonzeroCounts(x *mat.Dense, r, c int, byColumn bool) []float64 {
	n := r
	if byColumn {
		n = c
	}
	counts := make([]float64, n)
	for i := range r {
		for j := range c {
			if x.At(i, j) == 0 {
				continue
			}
			if byColumn {
				counts[j]++
			} else {
				counts[i]++
			}
		}
	}
	return counts
}

// Edgeplot plots the cumulative distribution of edge weights. With labels,
// edge (i, j) belongs to the category of node j.
func Edgeplot(x *mat.Dense, opts EdgeplotOptions) (*render.Figure, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if x == nil {
		return nil, errors.New(errors.ErrCodeInvalidValue, "graph is required")
	}
	r, c := x.Dims()
	if err := checkLabels("labels", opts.Labels, r); err != nil {
		return nil, err
	}
	if opts.Labels != nil && c != r {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"labels need a square graph, got %d×%d", r, c)
	}

	var edges []float64
	var labels hier.Labels
	for i := range r {
		for j := range c {
			v := x.At(i, j)
			if opts.NonZero && v == 0 {
				continue
			}
			edges = append(edges, v)
			if opts.Labels != nil {
				labels = append(labels, opts.Labels[j])
			}
		}
	}
	if len(edges) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidValue, "graph has no nonzero edges")
	}
	return distplot(edges, labels, "edgeplot", "Edge weight", &opts.DistOptions)
}

// distplot draws one empirical CDF per category. Categories with a single
// member or a single distinct value are drawn as a vertical line instead.
func distplot(data []float64, labels hier.Labels, kind, xlabel string, opts *DistOptions) (*render.Figure, error) {
	cats := []string{""}
	if labels != nil {
		cats = categories(labels)
	}
	colors, err := render.Palette(opts.Palette, len(cats))
	if err != nil {
		return nil, err
	}

	return run(kind, len(data), opts.Common, func() (*render.Figure, error) {
		fig := render.NewFigure(opts.FigSize.Width, opts.FigSize.Height)
		ax := fig.Subplot()
		ax.Title = opts.Title
		ax.X.Label.Text = xlabel
		ax.Y.Label.Text = "Density"

		for i, cat := range cats {
			vals := data
			if labels != nil {
				vals = nil
				for k, l := range labels {
					if l == cat {
						vals = append(vals, data[k])
					}
				}
			}
			p, thumb := ecdf(vals, colors[i])
			ax.Add(p)
			if labels != nil {
				ax.Legend.Add(cat, thumb)
			}
		}
		if ax.Y.Min > ax.Y.Max {
			ax.SetYLim(0, 1)
		}
		ax.Margin(0.02)
		return fig, nil
	})
}

// ecdf returns the empirical CDF of vals as a line with y = rank/len over
// the sorted values, or a vertical line at the first value when vals has no
// spread.
func ecdf(vals []float64, clr color.Color) (plot.Plotter, plot.Thumbnailer) {
	sty := draw.LineStyle{Color: clr, Width: render.CurrentStyle().LineWidth}
	if len(vals) < 2 || slices.Min(vals) == slices.Max(vals) {
		l := &render.VLine{X: vals[0], LineStyle: sty}
		return l, l
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	pts := make(plotter.XYs, len(sorted))
	for i, v := range sorted {
		pts[i] = plotter.XY{X: v, Y: float64(i) / float64(len(sorted))}
	}
	l := &plotter.Line{XYs: pts, LineStyle: sty}
	return l, l
}
