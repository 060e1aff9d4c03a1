package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/graph"
	graphio "github.com/matzehuels/graphplot/pkg/io"
	"github.com/matzehuels/graphplot/pkg/plot"
	"github.com/matzehuels/graphplot/pkg/render"
	"github.com/matzehuels/graphplot/pkg/render/nodelink"
)

// Drawing engines of the network command.
const (
	enginePlot     = "plot"
	engineGraphviz = "graphviz"
)

var engines = []string{enginePlot, engineGraphviz}

func (c *CLI) networkCommand() *cobra.Command {
	var (
		opts    plot.NetworkplotOptions
		out     outputFlags
		nodes   string
		palette string
		engine  string
	)

	cmd := &cobra.Command{
		Use:   "network [matrix]",
		Short: "Draw a graph as nodes and edges at fixed positions",
		Long: `Draw a graph as nodes and edges at fixed positions.

Node positions, hue and size come from the columns of the --nodes CSV table,
one row per node in matrix order. The plot engine draws with the same
renderer as every other command; the graphviz engine pins the nodes in a
neato layout and writes SVG, PNG, JPEG or the DOT source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, func(cfg *Config) {
				opts = cfg.Network
				mergeCommon(&opts.Common, cfg.Common)
			}); err != nil {
				return err
			}
			if err := errors.ValidateOneOf("engine", engine, engines); err != nil {
				return err
			}
			if nodes == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--nodes is required")
			}
			t, err := graphio.ImportTable(nodes)
			if err != nil {
				return err
			}
			opts.NodeData = t
			if opts.XKey == "" {
				opts.XKey = "x"
			}
			if opts.YKey == "" {
				opts.YKey = "y"
			}
			if palette != "" {
				opts.Palette = render.NamedPalette(palette)
			}
			if engine == engineGraphviz {
				return c.runNetworkGraphviz(cmd, args[0], opts, &out)
			}
			return c.runNetwork(cmd, args[0], opts, &out)
		},
	}

	addCommonFlags(cmd, &opts.Common)
	addOutputFlags(cmd, &out)
	cmd.Flags().StringVar(&nodes, "nodes", "", "CSV table with one row per node")
	cmd.Flags().StringVar(&opts.XKey, "x", "", "column of x positions (default x)")
	cmd.Flags().StringVar(&opts.YKey, "y", "", "column of y positions (default y)")
	cmd.Flags().StringVar(&opts.HueKey, "hue", "", "column of node categories")
	cmd.Flags().StringVar(&opts.NodeSizeKey, "size", "", "column of node size values")
	cmd.Flags().StringVar(&opts.SizeBy, "size-by", "", "compute node sizes instead: "+plot.SizeByPageRank)
	cmd.Flags().StringVar(&palette, "palette", "", "qualitative palette name (default Set1)")
	cmd.Flags().StringVar(&opts.EdgeHue, "edge-hue", "", "color edges like their source or target node")
	cmd.Flags().Float64Var(&opts.NodeAlpha, "node-alpha", 0, "node opacity (default 0.8)")
	cmd.Flags().Float64Var(&opts.EdgeAlpha, "edge-alpha", 0, "edge opacity (default 0.2)")
	cmd.Flags().Float64Var(&opts.EdgeLineWidth, "edge-width", 0, "edge line width in points (default 0.2)")
	cmd.Flags().BoolVar(&opts.Legend, "legend", false, "draw a legend of the hue categories")
	cmd.Flags().Float64Var(&opts.FigSize.Width, "width", 0, "figure width in inches (default 10)")
	cmd.Flags().Float64Var(&opts.FigSize.Height, "height", 0, "figure height in inches (default 10)")
	cmd.Flags().StringVar(&engine, "engine", enginePlot, "drawing engine: "+strings.Join(engines, ", "))
	_ = cmd.MarkFlagFilename("nodes", "csv")

	return cmd
}

func (c *CLI) runNetwork(cmd *cobra.Command, input string, opts plot.NetworkplotOptions, out *outputFlags) error {
	return c.plotTo(cmd, []string{input}, out, "Network of "+input, func() (*render.Figure, error) {
		prog := newProgress(loggerFromContext(cmd.Context()))

		adj, err := graphio.ImportMatrix(input)
		if err != nil {
			return nil, err
		}
		fig, err := plot.Networkplot(graph.FromMatrix(adj), opts)
		if err != nil {
			return nil, err
		}
		prog.done("Rendered network")
		return fig, nil
	})
}

func (c *CLI) runNetworkGraphviz(cmd *cobra.Command, input string, opts plot.NetworkplotOptions, out *outputFlags) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	path, format := out.resolve(input)
	if !nodelink.SupportsFormat(format) {
		return errors.New(errors.ErrCodeUnsupported,
			"graphviz output must be one of {%s}, not %q", strings.Join(nodelink.Formats, ", "), format)
	}

	adj, err := graphio.ImportMatrix(input)
	if err != nil {
		return err
	}
	net, err := plot.NetworkGraph(graph.FromMatrix(adj), opts)
	if err != nil {
		return err
	}

	// NetworkGraph applied the defaults to its own copy.
	opts.SetDefaults()
	dot := nodelink.ToDOT(*net, nodelink.Options{
		Width:     opts.FigSize.Width,
		Height:    opts.FigSize.Height,
		EdgeWidth: opts.EdgeLineWidth,
	})
	logger.Debug("generated DOT", "nodes", len(net.Nodes), "edges", len(net.Edges), "directed", net.Directed)

	data, err := nodelink.Render(cmd.Context(), dot, format)
	if err != nil {
		return err
	}
	if err := graphio.WriteArtifact(path, data); err != nil {
		return err
	}
	prog.done("Rendered network with graphviz")

	printSuccess(c.Out, "Network of %s (%s)", filepath.Base(input), engineGraphviz)
	printFile(c.Out, path)
	return nil
}
