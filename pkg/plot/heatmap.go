package plot

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/graph"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/render"
	"github.com/matzehuels/graphplot/pkg/transform"
)

// TickLabels selects the tick labels along one side of a heatmap.
// Names, when set, must hold one label per node and implies Show.
type TickLabels struct {
	Show  bool     `json:"show,omitempty" yaml:"show,omitempty" toml:"show,omitempty"`
	Names []string `json:"names,omitempty" yaml:"names,omitempty" toml:"names,omitempty"`
}

func (t TickLabels) shown() bool { return t.Show || t.Names != nil }

// names returns the labels for n cells, defaulting to the node indices.
func (t TickLabels) names(n int) []string {
	if t.Names != nil {
		return t.Names
	}
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// rasterizeAbove is the node count above which cells are drawn as an image.
const rasterizeAbove = 200

// HeatmapOptions configures Heatmap. The zero value is usable.
type HeatmapOptions struct {
	Common `yaml:",inline"`

	// Transform is applied to the matrix before plotting.
	Transform transform.Method `json:"transform,omitempty" yaml:"transform,omitempty" toml:"transform,omitempty"`

	// FigSize defaults to 10×10 inches.
	FigSize FigSize `json:"figsize" yaml:"figsize" toml:"figsize"`

	XTickLabels TickLabels `json:"xticklabels" yaml:"xticklabels" toml:"xticklabels"`
	YTickLabels TickLabels `json:"yticklabels" yaml:"yticklabels" toml:"yticklabels"`

	// ColorMap names the continuous colormap, "RdBu_r" by default.
	ColorMap string `json:"cmap,omitempty" yaml:"cmap,omitempty" toml:"cmap,omitempty"`

	// VMin and VMax pin the color range. Unset bounds come from the data.
	VMin *float64 `json:"vmin,omitempty" yaml:"vmin,omitempty" toml:"vmin,omitempty"`
	VMax *float64 `json:"vmax,omitempty" yaml:"vmax,omitempty" toml:"vmax,omitempty"`

	// Center is the value mapped to the middle of the colormap.
	Center float64 `json:"center,omitempty" yaml:"center,omitempty" toml:"center,omitempty"`

	// HideColorbar drops the colorbar.
	HideColorbar bool `json:"hide_cbar,omitempty" yaml:"hide_cbar,omitempty" toml:"hide_cbar,omitempty"`

	// Inner and Outer group the nodes hierarchically. Outer requires Inner.
	Inner hier.Labels `json:"inner,omitempty" yaml:"inner,omitempty" toml:"inner,omitempty"`
	Outer hier.Labels `json:"outer,omitempty" yaml:"outer,omitempty" toml:"outer,omitempty"`

	// HierLabelFontSize is the bracket label size in points, 30 by default.
	HierLabelFontSize float64 `json:"hier_label_fontsize,omitempty" yaml:"hier_label_fontsize,omitempty" toml:"hier_label_fontsize,omitempty"`

	// TitlePad is the gap in points between the matrix and the title.
	// Zero picks a pad that clears the brackets.
	TitlePad float64 `json:"title_pad,omitempty" yaml:"title_pad,omitempty" toml:"title_pad,omitempty"`

	// SortNodes orders nodes by total edge weight within their groups.
	SortNodes bool `json:"sort_nodes,omitempty" yaml:"sort_nodes,omitempty" toml:"sort_nodes,omitempty"`

	// Axes, when set, is drawn into instead of a new figure.
	Axes *render.Axes `json:"-" yaml:"-" toml:"-"`
}

// SetDefaults fills unset fields with their defaults.
func (o *HeatmapOptions) SetDefaults() {
	o.Common.setDefaults()
	o.FigSize = o.FigSize.orDefault(10, 10)
	if o.ColorMap == "" {
		o.ColorMap = render.DefaultColorMap
	}
	if o.HierLabelFontSize == 0 {
		o.HierLabelFontSize = DefaultHierLabelFontSize
	}
}

// Validate checks options that do not depend on the data.
func (o *HeatmapOptions) Validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	if err := o.FigSize.validate(); err != nil {
		return err
	}
	if err := errors.ValidatePositive("hier_label_fontsize", o.HierLabelFontSize); err != nil {
		return err
	}
	if o.TitlePad < 0 {
		return errors.New(errors.ErrCodeInvalidValue, "title_pad must be non-negative, not %v", o.TitlePad)
	}
	if o.VMin != nil && o.VMax != nil && *o.VMin > *o.VMax {
		return errors.New(errors.ErrCodeInvalidValue, "vmin (%v) must not exceed vmax (%v)", *o.VMin, *o.VMax)
	}
	return o.Transform.Validate()
}

// titlePad returns the title pad in points.
func (o *HeatmapOptions) titlePad() float64 {
	if o.TitlePad > 0 {
		return o.TitlePad
	}
	if o.Inner != nil {
		return 1.5*o.FontScale + o.HierLabelFontSize + 30
	}
	return 1.5*o.FontScale + 15
}

// Heatmap plots a graph as a color-coded matrix. With inner (and outer)
// labels the nodes are sorted into groups and the groups are marked with
// brackets on the top and left margins.
func Heatmap(x graph.Source, opts HeatmapOptions) (*render.Figure, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cm, err := render.ColorMap(opts.ColorMap)
	if err != nil {
		return nil, err
	}
	graphs, err := processGraphs([]graph.Source{x}, opts.Inner, opts.Outer, opts.Transform, opts.SortNodes)
	if err != nil {
		return nil, err
	}
	arr := graphs[0]
	n, _ := arr.Dims()
	for _, t := range []struct {
		param string
		tl    TickLabels
	}{{"xticklabels", opts.XTickLabels}, {"yticklabels", opts.YTickLabels}} {
		if t.tl.Names != nil {
			if err := errors.ValidateLength(t.param, len(t.tl.Names), n); err != nil {
				return nil, err
			}
		}
	}

	return run("heatmap", n, opts.Common, func() (*render.Figure, error) {
		fig, ax := figureFor(opts.Axes, opts.FigSize)
		drawHeatmap(ax, arr, cm, &opts)
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

// figureFor returns the figure and axes to draw into: ax itself when given,
// otherwise a single axes on a new figure.
func figureFor(ax *render.Axes, size FigSize) (*render.Figure, *render.Axes) {
	if ax != nil {
		return ax.Figure(), ax
	}
	fig := render.NewFigure(size.Width, size.Height)
	return fig, fig.Subplot()
}

// drawHeatmap draws the cells of arr into ax, row 0 at the top, with an
// optional colorbar on the right.
func drawHeatmap(ax *render.Axes, arr *mat.Dense, cm palette.ColorMap, opts *HeatmapOptions) {
	n, _ := arr.Dims()
	lo, hi := colorRange(arr, opts.VMin, opts.VMax, opts.Center)

	// Colors are assigned symmetrically around the center; the colorbar only
	// spans the values that can occur.
	vr := math.Max(hi-opts.Center, opts.Center-lo)
	if vr == 0 {
		vr = 1
	}
	cm.SetMin(opts.Center - vr)
	cm.SetMax(opts.Center + vr)

	hm := plotter.NewHeatMap(clampedGrid{arr, lo, hi}, render.Sample(cm, 256))
	hm.Min, hm.Max = cm.Min(), cm.Max()
	if n > rasterizeAbove {
		ax.Add(cellImage{hm})
	} else {
		ax.Add(hm)
	}

	ax.Square = true
	ax.SetXLim(0, float64(n))
	ax.SetYLim(0, float64(n))
	ax.InvertY()
	ax.X.LineStyle.Color = color.Transparent
	ax.Y.LineStyle.Color = color.Transparent
	ax.HideTicks()
	if opts.XTickLabels.shown() && opts.Outer == nil {
		ax.X.Tick.Marker = cellTicks(opts.XTickLabels.names(n))
		ax.X.Tick.Length = render.CurrentStyle().TickLength
	}
	if opts.YTickLabels.shown() && opts.Outer == nil {
		ax.Y.Tick.Marker = cellTicks(opts.YTickLabels.names(n))
		ax.Y.Tick.Length = render.CurrentStyle().TickLength
	}

	if !opts.HideColorbar {
		barRange := centered{ColorMap: cm, min: lo, max: hi}
		if lo == hi {
			barRange.min, barRange.max = cm.Min(), cm.Max()
		}
		cb := ax.Append(render.Right, 0.035, vg.Length(opts.FigSize.Width*0.04)*vg.Inch)
		bar := render.NewColorbar(&barRange, render.CurrentStyle())
		bar.Shrink = 0.7
		cb.Add(bar)
		cb.SetXLim(0, 1)
		cb.SetYLim(barRange.min, barRange.max)
	}
}

// colorRange returns the data range shown by the colormap.
func colorRange(arr mat.Matrix, vmin, vmax *float64, center float64) (lo, hi float64) {
	lo, hi = mat.Min(arr), mat.Max(arr)
	if vmin != nil {
		lo = *vmin
	}
	if vmax != nil {
		hi = *vmax
	}
	hi = math.Max(hi, lo)
	if lo == hi && lo == center {
		return center - 1, center + 1
	}
	return lo, hi
}

// cellTicks labels cell centers.
func cellTicks(names []string) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i) + 0.5, Label: name}
	}
	return ticks
}

// clampedGrid exposes a matrix as heatmap cells centered on i+0.5, with
// values clamped to [lo, hi].
type clampedGrid struct {
	m      mat.Matrix
	lo, hi float64
}

func (g clampedGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g clampedGrid) Z(c, r int) float64 {
	return math.Min(math.Max(g.m.At(r, c), g.lo), g.hi)
}

func (g clampedGrid) X(c int) float64 { return float64(c) + 0.5 }
func (g clampedGrid) Y(r int) float64 { return float64(r) + 0.5 }

// cellImage draws heatmap cells as a single image filling the data area,
// row 0 at the top. The axes must span exactly the matrix.
type cellImage struct {
	hm *plotter.HeatMap
}

func (ci cellImage) Plot(c draw.Canvas, _ *plot.Plot) {
	cols, rows := ci.hm.GridXYZ.Dims()
	img := image.NewNRGBA64(image.Rect(0, 0, cols, rows))
	pal := ci.hm.Palette.Colors()
	ps := float64(len(pal)-1) / (ci.hm.Max - ci.hm.Min)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			v := ci.hm.GridXYZ.Z(i, j)
			if math.IsNaN(v) {
				continue
			}
			img.Set(i, j, pal[int((v-ci.hm.Min)*ps+0.5)])
		}
	}
	c.DrawImage(c.Rectangle, img)
}

// centered restricts the reported range of a colormap without changing
// which colors values map to.
type centered struct {
	palette.ColorMap
	min, max float64
}

func (c *centered) Min() float64     { return c.min }
func (c *centered) Max() float64     { return c.max }
func (c *centered) SetMin(v float64) { c.min = v }
func (c *centered) SetMax(v float64) { c.max = v }
func (c *centered) At(v float64) (color.Color, error) {
	return c.ColorMap.At(math.Min(math.Max(v, c.ColorMap.Min()), c.ColorMap.Max()))
}
