package plot

import (
	"image/color"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/render"
)

// Diagonal plot kinds of a pairplot.
const (
	DiagAuto = "auto"
	DiagHist = "hist"
	DiagKDE  = "kde"
)

// DiagKinds lists the accepted PairplotOptions.DiagKind values.
var DiagKinds = []string{DiagAuto, DiagHist, DiagKDE}

// PairplotOptions configures Pairplot. The zero value is usable.
type PairplotOptions struct {
	Common `yaml:",inline"`

	// Labels assigns a category to every row of the data.
	Labels hier.Labels `json:"labels,omitempty" yaml:"labels,omitempty" toml:"labels,omitempty"`

	// ColNames names the columns, "Dimension 1".."Dimension d" by default.
	ColNames []string `json:"col_names,omitempty" yaml:"col_names,omitempty" toml:"col_names,omitempty"`

	// Variables selects and orders the plotted columns by name.
	Variables []string `json:"variables,omitempty" yaml:"variables,omitempty" toml:"variables,omitempty"`

	// Height of every cell in inches, 2.5 by default.
	Height float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`

	// DiagKind is "auto", "hist" or "kde". Auto draws densities unless a
	// category has fewer than two members.
	DiagKind string `json:"diag_kind,omitempty" yaml:"diag_kind,omitempty" toml:"diag_kind,omitempty"`

	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty" toml:"alpha,omitempty"`

	// Size is the marker area in square points, 50 by default.
	Size float64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`

	Palette    render.PaletteSpec `json:"-" yaml:"-" toml:"-"`
	LegendName string             `json:"legend_name,omitempty" yaml:"legend_name,omitempty" toml:"legend_name,omitempty"`
}

// SetDefaults fills unset fields with their defaults.
func (o *PairplotOptions) SetDefaults() {
	o.Common.setDefaults()
	if o.Height == 0 {
		o.Height = 2.5
	}
	if o.DiagKind == "" {
		o.DiagKind = DiagAuto
	}
	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	if o.Size == 0 {
		o.Size = 50
	}
	if o.LegendName == "" {
		o.LegendName = DefaultLegendName
	}
}

// Validate checks options that do not depend on the data.
func (o *PairplotOptions) Validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	if err := errors.ValidatePositive("height", o.Height); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("diag_kind", o.DiagKind, DiagKinds); err != nil {
		return err
	}
	if err := errors.ValidateUnit("alpha", o.Alpha); err != nil {
		return err
	}
	if err := errors.ValidatePositive("size", o.Size); err != nil {
		return err
	}
	return o.Palette.Validate()
}

// Pairplot draws a grid of pairwise scatter plots of the columns of x, one
// row per observation, with the marginal distribution of every column on the
// diagonal. Points and distributions are colored by label.
func Pairplot(x *mat.Dense, opts PairplotOptions) (*render.Figure, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if x == nil {
		return nil, errors.New(errors.ErrCodeInvalidValue, "data matrix is required")
	}
	n, d := x.Dims()
	if err := checkLabels("labels", opts.Labels, n); err != nil {
		return nil, err
	}
	names, err := columnNames(opts.ColNames, d)
	if err != nil {
		return nil, err
	}
	cols, err := selectColumns(names, opts.Variables)
	if err != nil {
		return nil, err
	}

	diag := opts.DiagKind
	if diag == DiagAuto {
		diag = DiagKDE
		if opts.Labels != nil && slices.Min(hier.FreqVec(opts.Labels)) < 2 {
			diag = DiagHist
		}
	}

	groups, err := groupRows(opts.Labels, n, opts.Palette)
	if err != nil {
		return nil, err
	}
	data := make([][]float64, len(cols))
	for i, c := range cols {
		data[i] = mat.Col(nil, c, x)
	}

	return run("pairplot", n, opts.Common, func() (*render.Figure, error) {
		k := len(cols)
		side := opts.Height * float64(k)
		fig := render.NewFigure(side+1.5, side+0.5)
		area := render.Rect{X: 0.08, Y: 0.07, W: 0.9 * side / (side + 1.5), H: 0.85}
		grid := fig.SubplotsIn(k, k, area, 0.08)
		fig.Title = opts.Title

		for r := range k {
			for c := range k {
				ax := grid[r][c]
				if r == c {
					diagonal(ax, data[c], groups, diag)
				} else {
					for _, g := range groups {
						ax.Add(scatterOf(pick(data[c], g.rows), pick(data[r], g.rows),
							render.WithAlpha(g.color, opts.Alpha), opts.Size))
					}
					ax.Margin(0.05)
				}
				ax.HideTicks()
				if r == k-1 {
					ax.X.Label.Text = names[cols[c]]
				}
				if c == 0 {
					ax.Y.Label.Text = names[cols[r]]
				}
			}
		}

		if opts.Labels != nil {
			fig.Legend.Add(opts.LegendName)
			for _, g := range groups {
				fig.Legend.Add(g.name, render.GlyphThumb{GlyphStyle: render.Glyph(g.color, opts.Size)})
			}
		}
		return fig, nil
	})
}

// =============================================================================
// Shared Helpers
// =============================================================================

// columnNames returns names or the default "Dimension i" names for d columns.
func columnNames(names []string, d int) ([]string, error) {
	if names == nil {
		names = make([]string, d)
		for i := range names {
			names[i] = "Dimension " + strconv.Itoa(i+1)
		}
		return names, nil
	}
	if err := errors.ValidateLength("col_names", len(names), d); err != nil {
		return nil, err
	}
	return names, nil
}

// selectColumns maps variable names to column indices. Without variables
// every column is selected in order.
func selectColumns(names, variables []string) ([]int, error) {
	if variables == nil {
		cols := make([]int, len(names))
		for i := range cols {
			cols[i] = i
		}
		return cols, nil
	}
	if len(variables) > len(names) {
		return nil, errors.New(errors.ErrCodeInvalidValue,
			"got %d variables for %d columns", len(variables), len(names))
	}
	cols := make([]int, len(variables))
	for i, v := range variables {
		idx := slices.Index(names, v)
		if idx < 0 {
			return nil, errors.New(errors.ErrCodeKeyNotFound, "variable %q is not a column name", v)
		}
		cols[i] = idx
	}
	return cols, nil
}

// group is the set of rows sharing one label.
type group struct {
	name  string
	rows  []int
	color color.Color
}

// groupRows splits n rows by label. Categories are sorted the way the labels
// compare and colored from the palette in that order. Without labels all rows form
// a single group with the first palette color.
func groupRows(labels hier.Labels, n int, spec render.PaletteSpec) ([]group, error) {
	if labels == nil {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return []group{{rows: rows, color: defaultColor()}}, nil
	}

	cats := categories(labels)
	colors, err := spec.Assign(cats)
	if err != nil {
		return nil, err
	}
	groups := make([]group, len(cats))
	for i, c := range cats {
		groups[i] = group{name: c, color: colors[c]}
	}
	for row, l := range labels {
		i := slices.Index(cats, l)
		groups[i].rows = append(groups[i].rows, row)
	}
	return groups, nil
}

// categories returns the distinct labels in sorted order.
func categories(labels hier.Labels) []string {
	cats := slices.Clone(labels)
	slices.SortFunc(cats, labels.Compare())
	return slices.Compact(cats)
}

func pick(vals []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = vals[r]
	}
	return out
}

// scatterOf returns a scatter of equally sized circles.
func scatterOf(xs, ys []float64, clr color.Color, area float64) *plotter.Scatter {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return &plotter.Scatter{XYs: pts, GlyphStyle: render.Glyph(clr, area)}
}

// markerArea is the default scatter marker area of the current context.
func markerArea() float64 {
	ms := render.CurrentStyle().MarkerSize.Points()
	return ms * ms
}

// =============================================================================
// Marginal Distributions
// =============================================================================

func diagonal(ax *render.Axes, vals []float64, groups []group, kind string) {
	if kind == DiagHist {
		bins := sturgesBins(vals)
		for _, g := range groups {
			ax.Add(histogram(pick(vals, g.rows), bins, g.color))
		}
		return
	}
	for _, g := range groups {
		if line := kde(pick(vals, g.rows), float64(len(g.rows))/float64(len(vals)), g.color); line != nil {
			ax.Add(line)
		}
	}
	ax.Y.Min = 0
}

// sturgesBins returns histogram bin edges over the range of vals, using
// Sturges' rule for the bin count.
func sturgesBins(vals []float64) []float64 {
	lo, hi := floats.Min(vals), floats.Max(vals)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	k := int(math.Ceil(math.Log2(float64(len(vals))))) + 1
	edges := make([]float64, k+1)
	floats.Span(edges, lo, hi)
	return edges
}

// histogram counts vals into the shared bin edges.
func histogram(vals, edges []float64, clr color.Color) *plotter.Histogram {
	k := len(edges) - 1
	bins := make([]plotter.HistogramBin, k)
	for i := range bins {
		bins[i] = plotter.HistogramBin{Min: edges[i], Max: edges[i+1]}
	}
	for _, v := range vals {
		i := int((v - edges[0]) / (edges[k] - edges[0]) * float64(k))
		bins[min(max(i, 0), k-1)].Weight++
	}
	return &plotter.Histogram{
		Bins:      bins,
		Width:     edges[1] - edges[0],
		FillColor: render.WithAlpha(clr, 0.5),
		LineStyle: draw.LineStyle{Color: clr, Width: render.CurrentStyle().LineWidth / 2},
	}
}

// kdeSamples is the number of points a density curve is evaluated at.
const kdeSamples = 200

// kde returns a Gaussian kernel density estimate of vals scaled by weight,
// using Scott's bandwidth and extending three bandwidths past the data. It
// returns nil when vals has no spread.
func kde(vals []float64, weight float64, clr color.Color) *plotter.Line {
	if len(vals) < 2 {
		return nil
	}
	bw := stat.StdDev(vals, nil) * math.Pow(float64(len(vals)), -0.2)
	if bw == 0 || math.IsNaN(bw) {
		return nil
	}
	kernel := distuv.Normal{Mu: 0, Sigma: 1}
	lo, hi := floats.Min(vals)-3*bw, floats.Max(vals)+3*bw
	xs := make([]float64, kdeSamples)
	floats.Span(xs, lo, hi)
	pts := make(plotter.XYs, kdeSamples)
	norm := weight / (float64(len(vals)) * bw)
	for i, x := range xs {
		var sum float64
		for _, v := range vals {
			sum += kernel.Prob((x - v) / bw)
		}
		pts[i] = plotter.XY{X: x, Y: sum * norm}
	}
	return &plotter.Line{
		XYs:       pts,
		LineStyle: draw.LineStyle{Color: clr, Width: render.CurrentStyle().LineWidth},
		FillColor: render.WithAlpha(clr, 0.25),
	}
}
