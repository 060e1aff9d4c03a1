package plot

import (
	"image/color"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/gmm"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/render"
)

// GMMOptions configures PairplotWithGMM. The zero value is usable.
type GMMOptions struct {
	Common `yaml:",inline"`

	// Labels are the true classes of the rows. Without them points are
	// colored by predicted cluster.
	Labels hier.Labels `json:"labels,omitempty" yaml:"labels,omitempty" toml:"labels,omitempty"`

	// ClusterPalette colors the ellipses and histograms per component and
	// LabelPalette colors the points per label. Both must be a palette name
	// or a map; both default to Set1.
	ClusterPalette render.PaletteSpec `json:"-" yaml:"-" toml:"-"`
	LabelPalette   render.PaletteSpec `json:"-" yaml:"-" toml:"-"`

	// LegendName titles the legend. It is "Cluster" when no labels are given.
	LegendName string `json:"legend_name,omitempty" yaml:"legend_name,omitempty" toml:"legend_name,omitempty"`

	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty" toml:"alpha,omitempty"`

	// FigSize defaults to 12×12 inches.
	FigSize FigSize `json:"figsize" yaml:"figsize" toml:"figsize"`
}

// SetDefaults fills unset fields with their defaults.
func (o *GMMOptions) SetDefaults() {
	o.Common.setDefaults()
	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	o.FigSize = o.FigSize.orDefault(12, 12)
	if o.Labels == nil {
		o.LegendName = "Cluster"
	}
}

// Validate checks options that do not depend on the data.
func (o *GMMOptions) Validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	if err := o.FigSize.validate(); err != nil {
		return err
	}
	if err := errors.ValidateUnit("alpha", o.Alpha); err != nil {
		return err
	}
	for _, p := range []struct {
		param string
		spec  render.PaletteSpec
	}{{"cluster_palette", o.ClusterPalette}, {"label_palette", o.LabelPalette}} {
		if p.spec.Colors != nil {
			return errors.New(errors.ErrCodeInvalidType, "%s must be a palette name or a map", p.param)
		}
		if err := p.spec.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PairplotWithGMM draws the rows of x colored by label together with the
// fitted components of m as ellipses, one panel per pair of dimensions.
// Two-dimensional data gets a single panel. With more dimensions the
// diagonal shows per-cluster histograms of the predicted assignments.
func PairplotWithGMM(x *mat.Dense, m gmm.Mixture, opts GMMOptions) (*render.Figure, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if x == nil {
		return nil, errors.New(errors.ErrCodeInvalidValue, "data matrix is required")
	}
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidValue, "a fitted mixture model is required")
	}
	n, d := x.Dims()
	if err := checkLabels("labels", opts.Labels, n); err != nil {
		return nil, err
	}
	if md := m.Means().RawMatrix().Cols; md != d {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"model has %d features, data has %d", md, d)
	}
	pred, err := m.Predict(x)
	if err != nil {
		return nil, err
	}
	covs, err := gmm.FullCovariances(m)
	if err != nil {
		return nil, err
	}
	k := m.NComponents()

	clusters := make([]string, k)
	for i := range clusters {
		clusters[i] = strconv.Itoa(i)
	}
	labels := opts.Labels
	if labels == nil {
		labels = make(hier.Labels, n)
		for i, p := range pred {
			labels[i] = clusters[p]
		}
	}

	clusterColors, err := componentColors(opts.ClusterPalette, clusters, k)
	if err != nil {
		return nil, err
	}
	cats := categories(labels)
	labelColors, err := componentColors(opts.LabelPalette, cats, k)
	if err != nil {
		return nil, err
	}
	groups := make([]group, len(cats))
	for i, c := range cats {
		groups[i] = group{name: c, color: labelColors[c]}
	}
	for row, l := range labels {
		i := slices.Index(cats, l)
		groups[i].rows = append(groups[i].rows, row)
	}

	cols := make([][]float64, d)
	for j := range cols {
		cols[j] = mat.Col(nil, j, x)
	}
	means := m.Means()

	return run("pairplot_with_gmm", n, opts.Common, func() (*render.Figure, error) {
		dims := d
		if d == 2 {
			dims = 1
		}
		fig := render.NewFigure(opts.FigSize.Width, opts.FigSize.Height)
		grid := fig.SubplotsIn(dims, dims, render.Rect{X: 0.08, Y: 0.07, W: 0.75, H: 0.85}, 0.08)
		fig.Title = opts.Title

		for i := range dims {
			for j := range dims {
				ax := grid[i][j]
				if i == j && d > 2 {
					bins := sturgesBins(cols[i])
					for t := range k {
						var vals []float64
						for row, p := range pred {
							if p == t {
								vals = append(vals, cols[i][row])
							}
						}
						if len(vals) > 0 {
							ax.Add(histogram(vals, bins, clusterColors[clusters[t]]))
						}
					}
				} else {
					xd, yd := j, i
					if d == 2 {
						xd, yd = 0, 1
					}
					for _, g := range groups {
						ax.Add(scatterOf(pick(cols[xd], g.rows), pick(cols[yd], g.rows), g.color, markerArea()))
					}
					ax.Margin(0.05)
					for t := range k {
						e := componentEllipse(means.RawRowView(t), covs[t], xd, yd)
						e.Color = render.WithAlpha(clusterColors[clusters[t]], opts.Alpha)
						ax.Add(e)
					}
				}
				ax.HideTicks()
				if d == 2 {
					ax.X.Label.Text, ax.Y.Label.Text = "Dimension 2", "Dimension 1"
					continue
				}
				// Only outer panels keep their labels.
				if i == dims-1 {
					ax.X.Label.Text = "Dimension " + strconv.Itoa(j+1)
				}
				if j == 0 {
					ax.Y.Label.Text = "Dimension " + strconv.Itoa(i+1)
				}
			}
		}

		if opts.LegendName != "" {
			fig.Legend.Add(opts.LegendName)
		}
		for _, g := range groups {
			fig.Legend.Add(g.name, render.GlyphThumb{GlyphStyle: render.Glyph(g.color, markerArea())})
		}
		return fig, nil
	})
}

// componentColors assigns colors to categories from spec. Named palettes are
// sampled with k colors, the number of mixture components.
func componentColors(spec render.PaletteSpec, cats []string, k int) (map[string]color.Color, error) {
	if spec.Map != nil {
		return spec.Assign(cats)
	}
	name := spec.Name
	if name == "" {
		name = render.DefaultPalette
	}
	colors, err := render.Palette(name, k)
	if err != nil {
		return nil, err
	}
	return render.PaletteSpec{Colors: colors}.Assign(cats)
}

// componentEllipse returns the two standard deviation contour of a
// Gaussian component projected onto dimensions j and k.
func componentEllipse(mean []float64, cov *mat.SymDense, j, k int) *render.Ellipse {
	sub := mat.NewSymDense(2, []float64{
		cov.At(j, j), cov.At(j, k),
		cov.At(k, j), cov.At(k, k),
	})
	var eig mat.EigenSym
	center := plotter.XY{X: mean[j], Y: mean[k]}
	if !eig.Factorize(sub, true) {
		return &render.Ellipse{Center: center}
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	angle := math.Atan(vecs.At(0, 1)/vecs.At(0, 0)) * 180 / math.Pi
	axis := func(v float64) float64 { return 2 * math.Sqrt2 * math.Sqrt(math.Max(v, 0)) }
	return &render.Ellipse{
		Center: center,
		Width:  axis(vals[0]),
		Height: axis(vals[1]),
		Angle:  180 + angle,
	}
}
