package plot

import (
	"image/color"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/graph"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/observability"
	"github.com/matzehuels/graphplot/pkg/render"
	"github.com/matzehuels/graphplot/pkg/transform"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultContext is the plotting context of every entry point.
	DefaultContext = "talk"

	// DefaultFontScale leaves context font sizes unchanged.
	DefaultFontScale = 1.0

	// DefaultAlpha is the marker opacity of scatter-based plots.
	DefaultAlpha = 0.7

	// DefaultLegendName titles the legend of labeled plots.
	DefaultLegendName = "Type"

	// DefaultHierLabelFontSize is the size in points of bracket labels.
	DefaultHierLabelFontSize = 30.0

	// desaturation applied to gridplot and heatmap palettes.
	paletteDesat = 0.75
)

// FigSize is a figure size in inches.
type FigSize struct {
	Width, Height float64
}

func (f FigSize) orDefault(w, h float64) FigSize {
	if f.Width == 0 && f.Height == 0 {
		return FigSize{w, h}
	}
	return f
}

func (f FigSize) validate() error {
	return errors.ValidateFigSize("figsize", f.Width, f.Height)
}

// =============================================================================
// Common Options
// =============================================================================

// Common holds the settings every plot accepts.
type Common struct {
	// Title is drawn above the plot. Empty means no title unless the plot
	// has a default.
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`

	// Context is one of "paper", "notebook", "talk" or "poster".
	Context string `json:"context,omitempty" yaml:"context,omitempty" toml:"context,omitempty"`

	// FontScale multiplies every context font size.
	FontScale float64 `json:"font_scale,omitempty" yaml:"font_scale,omitempty" toml:"font_scale,omitempty"`
}

func (c *Common) setDefaults() {
	if c.Context == "" {
		c.Context = DefaultContext
	}
	if c.FontScale == 0 {
		c.FontScale = DefaultFontScale
	}
}

func (c Common) validate() error {
	if err := errors.ValidateOneOf("context", c.Context, render.Contexts); err != nil {
		return err
	}
	return errors.ValidatePositive("font_scale", c.FontScale)
}

// run draws a plot of the given kind inside c's plotting context and
// reports it to the plot hooks. draw runs after validation succeeds.
func run(kind string, size int, c Common, draw func() (*render.Figure, error)) (fig *render.Figure, err error) {
	start := time.Now()
	hooks := observability.Plot()
	hooks.OnPlotStart(kind, size)
	defer func() { hooks.OnPlotComplete(kind, time.Since(start), err) }()

	restore, err := render.UseContext(c.Context, c.FontScale)
	if err != nil {
		return nil, err
	}
	defer restore()
	return draw()
}

// defaultColor is the color of unlabeled marks: the first color of the
// default palette.
func defaultColor() color.Color {
	colors, err := render.Palette(render.DefaultPalette, 1)
	if err != nil {
		return color.Black
	}
	return colors[0]
}

// =============================================================================
// Shared Input Handling
// =============================================================================

// checkLabels validates an optional per-node label vector.
func checkLabels(param string, l hier.Labels, n int) error {
	if l == nil {
		return nil
	}
	return errors.ValidateLength(param, len(l), n)
}

// processGraphs imports, checks, transforms and sorts a set of graphs that
// share one node labeling. Without inner labels the graphs are sorted by an
// implicit single group, which only reorders them when sortNodes is set.
func processGraphs(srcs []graph.Source, inner, outer hier.Labels, method transform.Method, sortNodes bool) ([]*mat.Dense, error) {
	if len(srcs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidValue, "at least one graph is required")
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}
	if outer != nil && inner == nil {
		return nil, errors.New(errors.ErrCodeInvalidValue, "outer labels require inner labels")
	}

	graphs := make([]*mat.Dense, len(srcs))
	for i, src := range srcs {
		g, err := graph.Import(src)
		if err != nil {
			return nil, err
		}
		n, _ := g.Dims()
		if i > 0 {
			if prev, _ := graphs[0].Dims(); prev != n {
				return nil, errors.New(errors.ErrCodeDimensionMismatch,
					"graph %d has %d nodes, want %d", i, n, prev)
			}
		}
		if err := checkLabels("inner labels", inner, n); err != nil {
			return nil, err
		}
		if err := checkLabels("outer labels", outer, n); err != nil {
			return nil, err
		}
		if graphs[i], err = transform.Apply(g, method); err != nil {
			return nil, err
		}
	}

	n, _ := graphs[0].Dims()
	if inner == nil {
		inner = hier.Implicit(n)
	}
	if outer == nil {
		outer = hier.Implicit(n)
	}
	for i, g := range graphs {
		sorted, _, err := hier.SortGraph(g, inner, outer, sortNodes)
		if err != nil {
			return nil, err
		}
		graphs[i] = sorted
	}
	return graphs, nil
}
