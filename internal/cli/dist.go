package cli

import (
	"strings"

	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/graphplot/pkg/io"
	"github.com/matzehuels/graphplot/pkg/plot"
	"github.com/matzehuels/graphplot/pkg/render"
)

func addDistFlags(cmd *cobra.Command, o *plot.DistOptions, labels *string) {
	addCommonFlags(cmd, &o.Common)
	cmd.Flags().StringVar(labels, "labels", "", "file with one label per node")
	_ = cmd.MarkFlagFilename("labels")
	cmd.Flags().StringVar(&o.Palette, "palette", "", "qualitative palette name (default Set1)")
	cmd.Flags().Float64Var(&o.FigSize.Width, "width", 0, "figure width in inches (default 10)")
	cmd.Flags().Float64Var(&o.FigSize.Height, "height", 0, "figure height in inches (default 5)")
}

func (c *CLI) degreeCommand() *cobra.Command {
	var (
		opts   plot.DegreeplotOptions
		out    outputFlags
		labels string
	)

	cmd := &cobra.Command{
		Use:   "degree [matrix]",
		Short: "Plot the cumulative distribution of node degrees",
		Long: `Plot the cumulative distribution of node degrees.

The degree of a node is its number of nonzero entries along its column (out)
or its row (in). With --labels every category gets its own curve.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, func(cfg *Config) {
				opts = cfg.Degree
				mergeCommon(&opts.Common, cfg.Common)
			}); err != nil {
				return err
			}
			l, err := readLabels(labels)
			if err != nil {
				return err
			}
			if l != nil {
				opts.Labels = l
			}
			return c.runDegree(cmd, args[0], opts, &out)
		},
	}

	addDistFlags(cmd, &opts.DistOptions, &labels)
	addOutputFlags(cmd, &out)
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "degree direction: "+strings.Join(plot.Directions, ", "))

	return cmd
}

func (c *CLI) runDegree(cmd *cobra.Command, input string, opts plot.DegreeplotOptions, out *outputFlags) error {
	return c.plotTo(cmd, []string{input}, out, "Degree plot of "+input, func() (*render.Figure, error) {
		prog := newProgress(loggerFromContext(cmd.Context()))

		adj, err := graphio.ImportMatrix(input)
		if err != nil {
			return nil, err
		}
		fig, err := plot.Degreeplot(adj, opts)
		if err != nil {
			return nil, err
		}
		prog.done("Rendered degree plot")
		return fig, nil
	})
}

func (c *CLI) edgeCommand() *cobra.Command {
	var (
		opts   plot.EdgeplotOptions
		out    outputFlags
		labels string
	)

	cmd := &cobra.Command{
		Use:   "edge [matrix]",
		Short: "Plot the cumulative distribution of edge weights",
		Long: `Plot the cumulative distribution of edge weights.

With --labels every category of source node gets its own curve.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, func(cfg *Config) {
				opts = cfg.Edge
				mergeCommon(&opts.Common, cfg.Common)
			}); err != nil {
				return err
			}
			l, err := readLabels(labels)
			if err != nil {
				return err
			}
			if l != nil {
				opts.Labels = l
			}
			return c.runEdge(cmd, args[0], opts, &out)
		},
	}

	addDistFlags(cmd, &opts.DistOptions, &labels)
	addOutputFlags(cmd, &out)
	cmd.Flags().BoolVar(&opts.NonZero, "nonzero", false, "drop zero weights")

	return cmd
}

func (c *CLI) runEdge(cmd *cobra.Command, input string, opts plot.EdgeplotOptions, out *outputFlags) error {
	return c.plotTo(cmd, []string{input}, out, "Edge plot of "+input, func() (*render.Figure, error) {
		prog := newProgress(loggerFromContext(cmd.Context()))

		adj, err := graphio.ImportMatrix(input)
		if err != nil {
			return nil, err
		}
		fig, err := plot.Edgeplot(adj, opts)
		if err != nil {
			return nil, err
		}
		prog.done("Rendered edge plot")
		return fig, nil
	})
}
