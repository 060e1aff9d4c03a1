package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphplot/pkg/graph"
	"github.com/matzehuels/graphplot/pkg/hier"
	graphio "github.com/matzehuels/graphplot/pkg/io"
	"github.com/matzehuels/graphplot/pkg/plot"
	"github.com/matzehuels/graphplot/pkg/render"
	"github.com/matzehuels/graphplot/pkg/transform"
)

// groupFlags name the label files that group nodes hierarchically.
type groupFlags struct {
	inner string
	outer string
}

func addGroupFlags(cmd *cobra.Command, g *groupFlags) {
	cmd.Flags().StringVar(&g.inner, "inner", "", "file with one inner group label per node")
	cmd.Flags().StringVar(&g.outer, "outer", "", "file with one outer group label per node (requires --inner)")
	_ = cmd.MarkFlagFilename("inner")
	_ = cmd.MarkFlagFilename("outer")
}

// apply overrides inner and outer with the label files that were given.
func (g *groupFlags) apply(inner, outer *hier.Labels) error {
	l, err := readLabels(g.inner)
	if err != nil {
		return err
	}
	if l != nil {
		*inner = l
	}
	if l, err = readLabels(g.outer); err != nil {
		return err
	}
	if l != nil {
		*outer = l
	}
	return nil
}

func addTransformFlag(cmd *cobra.Command, m *transform.Method) {
	cmd.Flags().StringVar((*string)(m), "transform", "", "matrix transform: "+strings.Join(transform.Methods, ", "))
}

// =============================================================================
// heatmap
// =============================================================================

func (c *CLI) heatmapCommand() *cobra.Command {
	var (
		opts       plot.HeatmapOptions
		out        outputFlags
		groups     groupFlags
		vmin, vmax float64
		ticks      bool
	)

	cmd := &cobra.Command{
		Use:   "heatmap [matrix]",
		Short: "Plot a graph as a color-coded adjacency matrix",
		Long: `Plot a graph as a color-coded adjacency matrix.

The matrix is read from CSV, JSON or an edge list. With --inner (and --outer)
label files the nodes are sorted into groups and the groups are marked with
brackets along the top and left edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, func(cfg *Config) {
				opts = cfg.Heatmap
				mergeCommon(&opts.Common, cfg.Common)
			}); err != nil {
				return err
			}
			if cmd.Flags().Changed("vmin") {
				opts.VMin = &vmin
			}
			if cmd.Flags().Changed("vmax") {
				opts.VMax = &vmax
			}
			if ticks {
				opts.XTickLabels.Show, opts.YTickLabels.Show = true, true
			}
			if err := groups.apply(&opts.Inner, &opts.Outer); err != nil {
				return err
			}
			return c.runHeatmap(cmd, args[0], opts, &out)
		},
	}

	addCommonFlags(cmd, &opts.Common)
	addOutputFlags(cmd, &out)
	addGroupFlags(cmd, &groups)
	addTransformFlag(cmd, &opts.Transform)
	cmd.Flags().StringVar(&opts.ColorMap, "cmap", "", "colormap name (default RdBu_r)")
	cmd.Flags().Float64Var(&opts.Center, "center", 0, "value at the middle of the colormap")
	cmd.Flags().Float64Var(&vmin, "vmin", 0, "lower bound of the color range")
	cmd.Flags().Float64Var(&vmax, "vmax", 0, "upper bound of the color range")
	cmd.Flags().BoolVar(&opts.HideColorbar, "hide-cbar", false, "drop the colorbar")
	cmd.Flags().BoolVar(&opts.SortNodes, "sort-nodes", false, "order nodes by total edge weight within groups")
	cmd.Flags().BoolVar(&ticks, "ticks", false, "label every row and column with its node index")
	cmd.Flags().Float64Var(&opts.FigSize.Width, "width", 0, "figure width in inches (default 10)")
	cmd.Flags().Float64Var(&opts.FigSize.Height, "height", 0, "figure height in inches (default 10)")
	cmd.Flags().Float64Var(&opts.HierLabelFontSize, "hier-label-size", 0, "bracket label size in points (default 30)")

	return cmd
}

func (c *CLI) runHeatmap(cmd *cobra.Command, input string, opts plot.HeatmapOptions, out *outputFlags) error {
	return c.plotTo(cmd, []string{input}, out, "Heatmap of "+input, func() (*render.Figure, error) {
		logger := loggerFromContext(cmd.Context())
		prog := newProgress(logger)

		adj, err := graphio.ImportMatrix(input)
		if err != nil {
			return nil, err
		}
		r, cols := adj.Dims()
		logger.Debug("read matrix", "path", input, "rows", r, "cols", cols)

		fig, err := plot.Heatmap(graph.FromMatrix(adj), opts)
		if err != nil {
			return nil, err
		}
		prog.done("Rendered heatmap")
		return fig, nil
	})
}

// =============================================================================
// gridplot
// =============================================================================

func (c *CLI) gridplotCommand() *cobra.Command {
	var (
		opts    plot.GridplotOptions
		out     outputFlags
		groups  groupFlags
		labels  string
		palette string
	)

	cmd := &cobra.Command{
		Use:   "gridplot [matrix...]",
		Short: "Overlay several graphs on the same nodes as a weighted scatter",
		Long: `Overlay several graphs on the same nodes as a weighted scatter.

Every nonzero edge becomes a square marker whose area follows its weight and
whose color identifies the graph it belongs to.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, func(cfg *Config) {
				opts = cfg.Grid
				mergeCommon(&opts.Common, cfg.Common)
			}); err != nil {
				return err
			}
			if l := splitList(labels); l != nil {
				opts.Labels = l
			}
			if palette != "" {
				opts.Palette = render.NamedPalette(palette)
			}
			if err := groups.apply(&opts.Inner, &opts.Outer); err != nil {
				return err
			}
			return c.runGridplot(cmd, args, opts, &out)
		},
	}

	addCommonFlags(cmd, &opts.Common)
	addOutputFlags(cmd, &out)
	addGroupFlags(cmd, &groups)
	addTransformFlag(cmd, &opts.Transform)
	cmd.Flags().StringVar(&labels, "labels", "", "legend name of every graph (comma-separated)")
	cmd.Flags().StringVar(&palette, "palette", "", "qualitative palette name (default Set1)")
	cmd.Flags().StringVar(&opts.LegendName, "legend-name", "", "legend title (default Type)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "plot height in inches (default 10)")
	cmd.Flags().Float64Var(&opts.Alpha, "alpha", 0, "marker opacity (default 0.7)")
	cmd.Flags().BoolVar(&opts.SortNodes, "sort-nodes", false, "order nodes by total edge weight within groups")

	return cmd
}

func (c *CLI) runGridplot(cmd *cobra.Command, inputs []string, opts plot.GridplotOptions, out *outputFlags) error {
	summary := "Gridplot of " + strconv.Itoa(len(inputs)) + " graphs"
	return c.plotTo(cmd, inputs, out, summary, func() (*render.Figure, error) {
		prog := newProgress(loggerFromContext(cmd.Context()))

		srcs := make([]graph.Source, len(inputs))
		for i, path := range inputs {
			adj, err := graphio.ImportMatrix(path)
			if err != nil {
				return nil, err
			}
			srcs[i] = graph.FromMatrix(adj)
		}

		fig, err := plot.Gridplot(srcs, opts)
		if err != nil {
			return nil, err
		}
		prog.done("Rendered gridplot")
		return fig, nil
	})
}
