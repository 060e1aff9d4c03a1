package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/graphplot/pkg/errors"
)

// Formats lists the output formats Render supports. "dot" returns the DOT
// source unchanged.
var Formats = []string{"svg", "png", "jpg", "jpeg", "dot"}

// Network is a graph whose nodes already have positions.
type Network struct {
	// Directed draws every edge with an arrow. Undirected networks list
	// each edge once.
	Directed bool
	Nodes    []Node
	Edges    []Edge
}

// Node is a positioned marker. Area is in square points.
type Node struct {
	X, Y  float64
	Area  float64
	Color color.Color
	Label string
}

// Edge joins two node indices.
type Edge struct {
	From, To int
	Color    color.Color
}

// Options configures DOT generation.
type Options struct {
	// Width and Height bound the drawing in inches. Positions are scaled
	// uniformly to fit.
	Width, Height float64

	// EdgeWidth is the edge pen width in points.
	EdgeWidth float64
}

const pointsPerInch = 72

// ToDOT converts a positioned network to Graphviz DOT source for the neato
// engine. Every node position is pinned, so Graphviz only draws.
func ToDOT(n Network, opts Options) string {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 10, 10
	}
	if opts.EdgeWidth <= 0 {
		opts.EdgeWidth = 0.2
	}
	scale, x0, y0 := fit(n.Nodes, opts.Width, opts.Height)

	var buf bytes.Buffer
	kind, arrow := "graph", "--"
	if n.Directed {
		kind, arrow = "digraph", "->"
	}
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, penwidth=0, label=\"\"];\n")
	fmt.Fprintf(&buf, "  edge [penwidth=%s, arrowsize=0.3];\n", num(opts.EdgeWidth))
	buf.WriteString("\n")

	for i, nd := range n.Nodes {
		fmt.Fprintf(&buf, "  %d [%s];\n", i, strings.Join(nodeAttrs(nd, scale, x0, y0), ", "))
	}

	buf.WriteString("\n")
	for _, e := range n.Edges {
		if !n.Directed && e.To < e.From {
			continue
		}
		fmt.Fprintf(&buf, "  %d %s %d", e.From, arrow, e.To)
		if e.Color != nil {
			fmt.Fprintf(&buf, " [color=%q]", hex(e.Color))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// fit returns the inches per data unit and the data origin that map all
// node positions into a width×height box.
func fit(nodes []Node, width, height float64) (scale, x0, y0 float64) {
	if len(nodes) == 0 {
		return 1, 0, 0
	}
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, n := range nodes {
		xmin, xmax = math.Min(xmin, n.X), math.Max(xmax, n.X)
		ymin, ymax = math.Min(ymin, n.Y), math.Max(ymax, n.Y)
	}
	sx, sy := math.Inf(1), math.Inf(1)
	if xmax > xmin {
		sx = width / (xmax - xmin)
	}
	if ymax > ymin {
		sy = height / (ymax - ymin)
	}
	scale = math.Min(sx, sy)
	if math.IsInf(scale, 1) {
		scale = 1
	}
	return scale, xmin, ymin
}

func nodeAttrs(n Node, scale, x0, y0 float64) []string {
	x, y := (n.X-x0)*scale, (n.Y-y0)*scale
	attrs := []string{fmt.Sprintf("pos=\"%s,%s!\"", num(x), num(y))}
	if n.Area > 0 {
		d := 2 * math.Sqrt(n.Area/math.Pi) / pointsPerInch
		attrs = append(attrs, "width="+num(d), "height="+num(d))
	}
	if n.Color != nil {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", hex(n.Color)))
	}
	if n.Label != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Label))
	}
	return attrs
}

// hex formats c as #rrggbbaa.
func hex(c color.Color) string {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	if nc.A == 0 {
		return "#00000000"
	}
	cf, _ := colorful.MakeColor(c)
	return fmt.Sprintf("%s%02x", cf.Clamped().Hex(), nc.A)
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

// =============================================================================
// Rendering
// =============================================================================

// Render draws the DOT source in format with the neato engine.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	format = strings.ToLower(format)
	var gf graphviz.Format
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		gf = graphviz.SVG
	case "png":
		gf = graphviz.PNG
	case "jpg", "jpeg":
		gf = graphviz.JPG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"graphviz output must be one of {%s}, not %q", strings.Join(Formats, ", "), format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gf, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if gf == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG draws the DOT source as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, "svg")
}

// SupportsFormat reports whether Render can produce format.
func SupportsFormat(format string) bool {
	return slices.Contains(Formats, strings.ToLower(format))
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element with one whose viewBox starts
// at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
