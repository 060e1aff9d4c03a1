package plot

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/render"
)

// ScreeplotOptions configures Screeplot. The zero value plots the cumulative
// share of every component.
type ScreeplotOptions struct {
	Common `yaml:",inline"`

	// FigSize defaults to 10×5 inches.
	FigSize FigSize `json:"figsize" yaml:"figsize" toml:"figsize"`

	// NonCumulative plots each component's share instead of the running
	// total.
	NonCumulative bool `json:"non_cumulative,omitempty" yaml:"non_cumulative,omitempty" toml:"non_cumulative,omitempty"`

	// ShowFirst limits the plot to the leading components. Zero shows all.
	ShowFirst int `json:"show_first,omitempty" yaml:"show_first,omitempty" toml:"show_first,omitempty"`
}

// SetDefaults fills unset fields with their defaults.
func (o *ScreeplotOptions) SetDefaults() {
	o.Common.setDefaults()
	if o.Title == "" {
		o.Title = "Scree plot"
	}
	o.FigSize = o.FigSize.orDefault(10, 5)
}

// Validate checks options that do not depend on the data.
func (o *ScreeplotOptions) Validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	if err := o.FigSize.validate(); err != nil {
		return err
	}
	return errors.ValidateNonNegativeInt("show_first", o.ShowFirst)
}

// Screeplot plots the share of the singular values of x explained by each
// component, in decreasing order.
func Screeplot(x *mat.Dense, opts ScreeplotOptions) (*render.Figure, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if x == nil {
		return nil, errors.New(errors.ErrCodeInvalidValue, "data matrix is required")
	}
	y, err := explainedVariance(x, !opts.NonCumulative, opts.ShowFirst)
	if err != nil {
		return nil, err
	}

	return run("screeplot", len(y), opts.Common, func() (*render.Figure, error) {
		fig := render.NewFigure(opts.FigSize.Width, opts.FigSize.Height)
		ax := fig.Subplot()
		pts := make(plotter.XYs, len(y))
		for i, v := range y {
			pts[i] = plotter.XY{X: float64(i), Y: v}
		}
		ax.Add(&plotter.Line{XYs: pts, LineStyle: draw.LineStyle{
			Color: defaultColor(),
			Width: render.CurrentStyle().LineWidth,
		}})
		ax.Margin(0.05)
		ax.Title = opts.Title
		ax.X.Label.Text = "Component"
		ax.Y.Label.Text = "Variance explained"
		return fig, nil
	})
}

// explainedVariance returns the singular values of x normalized to sum to
// one, optionally accumulated, truncated to the first showFirst values.
func explainedVariance(x mat.Matrix, cumulative bool, showFirst int) ([]float64, error) {
	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDNone) {
		return nil, errors.New(errors.ErrCodeInternal, "singular value decomposition failed")
	}
	vals := svd.Values(nil)
	total := floats.Sum(vals)
	if total == 0 {
		return nil, errors.New(errors.ErrCodeInvalidValue, "matrix has no nonzero singular values")
	}
	floats.Scale(1/total, vals)
	if showFirst > 0 && showFirst < len(vals) {
		vals = vals[:showFirst]
	}
	if cumulative {
		floats.CumSum(vals, vals)
	}
	return vals, nil
}
