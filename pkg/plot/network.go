package plot

import (
	"image/color"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/graph"
	"github.com/matzehuels/graphplot/pkg/hier"
	"github.com/matzehuels/graphplot/pkg/render"
	"github.com/matzehuels/graphplot/pkg/render/nodelink"
	"github.com/matzehuels/graphplot/pkg/table"
)

// Edge hue sources.
const (
	EdgeHueSource = "source"
	EdgeHueTarget = "target"
)

// SizeByPageRank sizes nodes by their PageRank score.
const SizeByPageRank = "pagerank"

// NetworkplotOptions configures Networkplot.
//
// Node positions come either from the X and Y slices, or from the XKey and
// YKey columns of NodeData. Hue and node sizes follow the same choice: Hue
// and NodeSize go with slices, HueKey and NodeSizeKey with a table.
type NetworkplotOptions struct {
	Common `yaml:",inline"`

	X, Y []float64 `json:"-" yaml:"-" toml:"-"`

	NodeData *table.Table `json:"-" yaml:"-" toml:"-"`
	XKey     string       `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	YKey     string       `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`

	// Hue colors nodes by category.
	Hue    hier.Labels `json:"-" yaml:"-" toml:"-"`
	HueKey string      `json:"hue,omitempty" yaml:"hue,omitempty" toml:"hue,omitempty"`

	// Palette colors hue categories in order of first appearance. It
	// defaults to Set1 when a hue is given.
	Palette render.PaletteSpec `json:"-" yaml:"-" toml:"-"`

	// NodeSize gives every node a numeric size value. SizeBy "pagerank"
	// computes the values from the graph instead.
	NodeSize    []float64 `json:"-" yaml:"-" toml:"-"`
	NodeSizeKey string    `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	SizeBy      string    `json:"size_by,omitempty" yaml:"size_by,omitempty" toml:"size_by,omitempty"`

	// NodeSizes maps size values linearly onto this marker area range in
	// square points. It defaults to half and twice the context marker area.
	NodeSizes [2]float64 `json:"node_sizes,omitempty" yaml:"node_sizes,omitempty" toml:"node_sizes,omitempty"`

	// NodeSizeMap assigns marker areas to exact size values instead,
	// keyed by their shortest decimal representation.
	NodeSizeMap map[string]float64 `json:"node_size_map,omitempty" yaml:"node_size_map,omitempty" toml:"node_size_map,omitempty"`

	NodeAlpha     float64 `json:"node_alpha,omitempty" yaml:"node_alpha,omitempty" toml:"node_alpha,omitempty"`
	EdgeAlpha     float64 `json:"edge_alpha,omitempty" yaml:"edge_alpha,omitempty" toml:"edge_alpha,omitempty"`
	EdgeLineWidth float64 `json:"edge_linewidth,omitempty" yaml:"edge_linewidth,omitempty" toml:"edge_linewidth,omitempty"`

	// EdgeHue colors an edge like its "source" or "target" node.
	EdgeHue string `json:"edge_hue,omitempty" yaml:"edge_hue,omitempty" toml:"edge_hue,omitempty"`

	Legend bool `json:"legend,omitempty" yaml:"legend,omitempty" toml:"legend,omitempty"`

	// FigSize defaults to 10×10 inches.
	FigSize FigSize `json:"figsize" yaml:"figsize" toml:"figsize"`

	Axes *render.Axes `json:"-" yaml:"-" toml:"-"`
}

// SetDefaults fills unset fields with their defaults.
func (o *NetworkplotOptions) SetDefaults() {
	o.Common.setDefaults()
	if o.NodeAlpha == 0 {
		o.NodeAlpha = 0.8
	}
	if o.EdgeAlpha == 0 {
		o.EdgeAlpha = 0.2
	}
	if o.EdgeLineWidth == 0 {
		o.EdgeLineWidth = 0.2
	}
	if o.EdgeHue == "" {
		o.EdgeHue = EdgeHueSource
	}
	o.FigSize = o.FigSize.orDefault(10, 10)
}

// Validate checks options that do not depend on the graph.
func (o *NetworkplotOptions) Validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	if err := o.FigSize.validate(); err != nil {
		return err
	}
	for _, a := range []struct {
		param string
		v     float64
	}{{"node_alpha", o.NodeAlpha}, {"edge_alpha", o.EdgeAlpha}} {
		if err := errors.ValidateUnit(a.param, a.v); err != nil {
			return err
		}
	}
	if err := errors.ValidatePositive("edge_linewidth", o.EdgeLineWidth); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("edge_hue", o.EdgeHue, []string{EdgeHueSource, EdgeHueTarget}); err != nil {
		return err
	}
	if o.SizeBy != "" {
		if err := errors.ValidateOneOf("size_by", o.SizeBy, []string{SizeByPageRank}); err != nil {
			return err
		}
	}
	if o.NodeSizes != [2]float64{} && (o.NodeSizes[0] < 0 || o.NodeSizes[1] < o.NodeSizes[0]) {
		return errors.New(errors.ErrCodeInvalidValue,
			"node_sizes must be a non-negative (min, max) pair, not (%v, %v)", o.NodeSizes[0], o.NodeSizes[1])
	}
	if o.NodeSizes != [2]float64{} && o.NodeSizeMap != nil {
		return errors.New(errors.ErrCodeInvalidType, "node_sizes must be a range or a map, not both")
	}
	return o.Palette.Validate()
}

// nodeAttrs are the per-node values a network plot draws.
type nodeAttrs struct {
	x, y []float64
	hue  hier.Labels
	size []float64
}

// resolve reads positions, hue and size values from the slices or from the
// node table, rejecting mixtures of both.
func (o *NetworkplotOptions) resolve(n int) (nodeAttrs, error) {
	var a nodeAttrs
	arrays := o.X != nil && o.Y != nil
	keys := o.XKey != "" && o.YKey != ""
	switch {
	case arrays && o.XKey == "" && o.YKey == "":
		if o.NodeData != nil {
			return a, errors.New(errors.ErrCodeInvalidType, "node data must be empty when positions are given as slices")
		}
		if o.HueKey != "" || o.NodeSizeKey != "" {
			return a, errors.New(errors.ErrCodeInvalidType, "hue and size must be slices when positions are slices")
		}
		if err := errors.ValidateLength("x", len(o.X), n); err != nil {
			return a, err
		}
		if err := errors.ValidateLength("y", len(o.Y), n); err != nil {
			return a, err
		}
		if err := checkLabels("hue", o.Hue, n); err != nil {
			return a, err
		}
		if o.NodeSize != nil {
			if err := errors.ValidateLength("node_size", len(o.NodeSize), n); err != nil {
				return a, err
			}
		}
		a = nodeAttrs{x: o.X, y: o.Y, hue: o.Hue, size: o.NodeSize}

	case keys && o.X == nil && o.Y == nil:
		if o.NodeData == nil {
			return a, errors.New(errors.ErrCodeInvalidValue, "positions given as column names need node data")
		}
		if o.Hue != nil || o.NodeSize != nil {
			return a, errors.New(errors.ErrCodeInvalidType, "hue and size must be column names when positions are column names")
		}
		if err := errors.ValidateLength("node data", o.NodeData.Len(), n); err != nil {
			return a, err
		}
		var err error
		if a.x, err = o.NodeData.Floats(o.XKey); err != nil {
			return a, err
		}
		if a.y, err = o.NodeData.Floats(o.YKey); err != nil {
			return a, err
		}
		if o.HueKey != "" {
			if a.hue, err = o.NodeData.Labels(o.HueKey); err != nil {
				return a, err
			}
		}
		if o.NodeSizeKey != "" {
			if a.size, err = o.NodeData.Floats(o.NodeSizeKey); err != nil {
				return a, err
			}
		}

	default:
		return a, errors.New(errors.ErrCodeInvalidType, "x and y must both be slices or both be column names")
	}
	return a, nil
}

// network is a graph with its resolved node attributes.
type network struct {
	adj        *mat.Dense
	n          int
	attrs      nodeAttrs
	cats       hier.Labels
	hueColors  map[string]color.Color
	nodeColors []color.Color
}

// prepare validates opts against adj and resolves positions, sizes and
// hue colors.
func (o *NetworkplotOptions) prepare(adj graph.Source) (*network, error) {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	g, err := graph.Import(adj)
	if err != nil {
		return nil, err
	}
	n, _ := g.Dims()
	attrs, err := o.resolve(n)
	if err != nil {
		return nil, err
	}
	if o.SizeBy == SizeByPageRank {
		if attrs.size != nil {
			return nil, errors.New(errors.ErrCodeInvalidType, "size_by cannot be combined with explicit node sizes")
		}
		attrs.size = graph.PageRank(g)
	}

	net := &network{adj: g, n: n, attrs: attrs}
	if attrs.hue != nil {
		spec := o.Palette
		if spec.Name == "" && spec.Colors == nil && spec.Map == nil {
			spec.Name = render.DefaultPalette
		}
		net.cats, _ = hier.UniqueLike(attrs.hue)
		if net.hueColors, err = spec.Assign(net.cats); err != nil {
			return nil, err
		}
		net.nodeColors = make([]color.Color, n)
		for i, h := range attrs.hue {
			net.nodeColors[i] = net.hueColors[h]
		}
	}
	return net, nil
}

// edgeColor returns the color of edge (i, j), or nil without a hue.
func (net *network) edgeColor(i, j int, o *NetworkplotOptions) color.Color {
	if net.nodeColors == nil {
		return nil
	}
	end := i
	if o.EdgeHue == EdgeHueTarget {
		end = j
	}
	return render.WithAlpha(net.nodeColors[end], o.EdgeAlpha)
}

// nodeColor returns the fill of node i.
func (net *network) nodeColor(i int, o *NetworkplotOptions) color.Color {
	clr := defaultColor()
	if net.nodeColors != nil {
		clr = net.nodeColors[i]
	}
	return render.WithAlpha(clr, o.NodeAlpha)
}

// Networkplot draws a graph with fixed node positions: edges as straight
// segments between their nodes and nodes as markers colored by hue and sized
// by a numeric value.
func Networkplot(adj graph.Source, opts NetworkplotOptions) (*render.Figure, error) {
	net, err := opts.prepare(adj)
	if err != nil {
		return nil, err
	}
	n, attrs := net.n, net.attrs

	return run("networkplot", n, opts.Common, func() (*render.Figure, error) {
		fig, ax := figureFor(opts.Axes, opts.FigSize)

		sizes, err := opts.markerSizes(attrs.size, n)
		if err != nil {
			return nil, err
		}

		edges := &render.Polylines{LineStyle: draw.LineStyle{
			Color: render.WithAlpha(defaultColor(), opts.EdgeAlpha),
			Width: vg.Points(opts.EdgeLineWidth),
		}}
		for i := range n {
			for j := range n {
				if net.adj.At(i, j) == 0 {
					continue
				}
				edges.Lines = append(edges.Lines, plotter.XYs{
					{X: attrs.x[i], Y: attrs.y[i]},
					{X: attrs.x[j], Y: attrs.y[j]},
				})
				if c := net.edgeColor(i, j, &opts); c != nil {
					edges.Colors = append(edges.Colors, c)
				}
			}
		}
		ax.Add(edges)

		pts := make(plotter.XYs, n)
		for i := range pts {
			pts[i] = plotter.XY{X: attrs.x[i], Y: attrs.y[i]}
		}
		ax.Add(&plotter.Scatter{
			XYs: pts,
			GlyphStyleFunc: func(i int) draw.GlyphStyle {
				return render.Glyph(net.nodeColor(i, &opts), sizes[i])
			},
		})

		if opts.Legend && net.nodeColors != nil {
			for _, c := range net.cats {
				ax.Legend.Add(c, render.GlyphThumb{GlyphStyle: render.Glyph(net.hueColors[c], markerArea())})
			}
		}
		ax.Margin(0.05)
		ax.HideTicks()
		ax.Title = opts.Title
		return fig, nil
	})
}

// NetworkGraph resolves the nodes and edges Networkplot would draw into a
// positioned network for Graphviz export. Symmetric graphs become
// undirected networks.
func NetworkGraph(adj graph.Source, opts NetworkplotOptions) (*nodelink.Network, error) {
	net, err := opts.prepare(adj)
	if err != nil {
		return nil, err
	}
	restore, err := render.UseContext(opts.Context, opts.FontScale)
	if err != nil {
		return nil, err
	}
	defer restore()
	sizes, err := opts.markerSizes(net.attrs.size, net.n)
	if err != nil {
		return nil, err
	}
	out := &nodelink.Network{
		Directed: !graph.IsSymmetric(net.adj),
		Nodes:    make([]nodelink.Node, net.n),
	}
	for i := range out.Nodes {
		out.Nodes[i] = nodelink.Node{
			X:     net.attrs.x[i],
			Y:     net.attrs.y[i],
			Area:  sizes[i],
			Color: net.nodeColor(i, &opts),
		}
		if net.attrs.hue != nil {
			out.Nodes[i].Label = net.attrs.hue[i]
		}
	}
	for i := range net.n {
		for j := range net.n {
			if net.adj.At(i, j) == 0 {
				continue
			}
			c := net.edgeColor(i, j, &opts)
			if c == nil {
				c = render.WithAlpha(defaultColor(), opts.EdgeAlpha)
			}
			out.Edges = append(out.Edges, nodelink.Edge{From: i, To: j, Color: c})
		}
	}
	return out, nil
}

// markerSizes returns the marker area of every node. Without size values all
// nodes get the context marker area.
func (o *NetworkplotOptions) markerSizes(vals []float64, n int) ([]float64, error) {
	out := make([]float64, n)
	def := markerArea()
	if vals == nil {
		for i := range out {
			out[i] = def
		}
		return out, nil
	}
	if o.NodeSizeMap != nil {
		for i, v := range vals {
			key := strconv.FormatFloat(v, 'g', -1, 64)
			s, ok := o.NodeSizeMap[key]
			if !ok {
				return nil, errors.New(errors.ErrCodeKeyNotFound, "node_size_map has no size for %s", key)
			}
			out[i] = s
		}
		return out, nil
	}
	lo, hi := o.NodeSizes[0], o.NodeSizes[1]
	if o.NodeSizes == [2]float64{} {
		lo, hi = def/2, def*2
	}
	vmin, vmax := floats.Min(vals), floats.Max(vals)
	for i, v := range vals {
		if vmax == vmin {
			out[i] = (lo + hi) / 2
			continue
		}
		out[i] = lo + (v-vmin)/(vmax-vmin)*(hi-lo)
	}
	return out, nil
}
