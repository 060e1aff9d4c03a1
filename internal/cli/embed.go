package cli

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/hier"
	graphio "github.com/matzehuels/graphplot/pkg/io"
	"github.com/matzehuels/graphplot/pkg/plot"
	"github.com/matzehuels/graphplot/pkg/render"
)

// embedding is a data matrix with optional column names and row labels.
type embedding struct {
	X        *mat.Dense
	ColNames []string
	Labels   hier.Labels
}

// embedFlags select the row labels of an embedding.
type embedFlags struct {
	labels   string
	labelCol string
}

func addEmbedFlags(cmd *cobra.Command, e *embedFlags) {
	cmd.Flags().StringVar(&e.labels, "labels", "", "file with one label per row")
	cmd.Flags().StringVar(&e.labelCol, "label-col", "", "CSV column holding the row labels")
	_ = cmd.MarkFlagFilename("labels")
}

// readEmbedding reads a data matrix. CSV files are tables with a header row:
// their numeric columns form the matrix, except the label column. Other
// files go through the matrix readers and carry no names.
func readEmbedding(path string, e embedFlags) (*embedding, error) {
	var emb embedding
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		t, err := graphio.ImportTable(path)
		if err != nil {
			return nil, err
		}
		names := slices.DeleteFunc(t.NumericNames(), func(n string) bool { return n == e.labelCol })
		if emb.X, err = t.Matrix(names); err != nil {
			return nil, err
		}
		emb.ColNames = names
		if e.labelCol != "" {
			if emb.Labels, err = t.Labels(e.labelCol); err != nil {
				return nil, err
			}
		}
	} else {
		if e.labelCol != "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--label-col needs a CSV table, not %s", path)
		}
		x, err := graphio.ImportMatrix(path)
		if err != nil {
			return nil, err
		}
		emb.X = x
	}

	if e.labels != "" {
		l, err := graphio.ImportLabels(e.labels)
		if err != nil {
			return nil, err
		}
		emb.Labels = l
	}
	return &emb, nil
}

// =============================================================================
// pairplot
// =============================================================================

func (c *CLI) pairplotCommand() *cobra.Command {
	var (
		opts    plot.PairplotOptions
		out     outputFlags
		ef      embedFlags
		vars    string
		palette string
	)

	cmd := &cobra.Command{
		Use:   "pairplot [data]",
		Short: "Plot pairwise scatter plots of an embedding",
		Long: `Plot pairwise scatter plots of an embedding.

Each pair of columns gets one panel; the diagonal shows the distribution of
each column. Rows are colored by --labels or by the --label-col column.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, func(cfg *Config) {
				opts = cfg.Pair
				mergeCommon(&opts.Common, cfg.Common)
			}); err != nil {
				return err
			}
			if v := splitList(vars); v != nil {
				opts.Variables = v
			}
			if palette != "" {
				opts.Palette = render.NamedPalette(palette)
			}
			return c.runPairplot(cmd, args[0], ef, opts, &out)
		},
	}

	addCommonFlags(cmd, &opts.Common)
	addOutputFlags(cmd, &out)
	addEmbedFlags(cmd, &ef)
	cmd.Flags().StringVar(&vars, "vars", "", "columns to plot, in order (comma-separated)")
	cmd.Flags().StringVar(&opts.DiagKind, "diag", "", "diagonal plots: "+strings.Join(plot.DiagKinds, ", "))
	cmd.Flags().StringVar(&palette, "palette", "", "qualitative palette name (default Set1)")
	cmd.Flags().StringVar(&opts.LegendName, "legend-name", "", "legend title (default Type)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "panel height in inches (default 2.5)")
	cmd.Flags().Float64Var(&opts.Alpha, "alpha", 0, "marker opacity (default 0.7)")
	cmd.Flags().Float64Var(&opts.Size, "size", 0, "marker area in square points (default 50)")

	return cmd
}

func (c *CLI) runPairplot(cmd *cobra.Command, input string, ef embedFlags, opts plot.PairplotOptions, out *outputFlags) error {
	return c.plotTo(cmd, []string{input}, out, "Pairplot of "+input, func() (*render.Figure, error) {
		logger := loggerFromContext(cmd.Context())
		prog := newProgress(logger)

		emb, err := readEmbedding(input, ef)
		if err != nil {
			return nil, err
		}
		if emb.ColNames != nil {
			opts.ColNames = emb.ColNames
		}
		if emb.Labels != nil {
			opts.Labels = emb.Labels
		}
		r, cols := emb.X.Dims()
		logger.Debug("read embedding", "path", input, "rows", r, "cols", cols)

		fig, err := plot.Pairplot(emb.X, opts)
		if err != nil {
			return nil, err
		}
		prog.done("Rendered pairplot")
		return fig, nil
	})
}

// =============================================================================
// gmm
// =============================================================================

func (c *CLI) gmmCommand() *cobra.Command {
	var (
		opts           plot.GMMOptions
		out            outputFlags
		ef             embedFlags
		model          string
		clusterPalette string
		labelPalette   string
	)

	cmd := &cobra.Command{
		Use:   "gmm [data]",
		Short: "Plot an embedding with the components of a Gaussian mixture",
		Long: `Plot an embedding with the components of a fitted Gaussian mixture.

The model file is JSON with the component means, the covariances and the
covariance type (full, tied, diag or spherical). Points are colored by
--labels when given and by predicted component otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, func(cfg *Config) {
				opts = cfg.GMM
				mergeCommon(&opts.Common, cfg.Common)
			}); err != nil {
				return err
			}
			if clusterPalette != "" {
				opts.ClusterPalette = render.NamedPalette(clusterPalette)
			}
			if labelPalette != "" {
				opts.LabelPalette = render.NamedPalette(labelPalette)
			}
			return c.runGMM(cmd, args[0], model, ef, opts, &out)
		},
	}

	addCommonFlags(cmd, &opts.Common)
	addOutputFlags(cmd, &out)
	addEmbedFlags(cmd, &ef)
	cmd.Flags().StringVarP(&model, "model", "m", "", "fitted mixture model (JSON)")
	cmd.Flags().StringVar(&clusterPalette, "cluster-palette", "", "palette of the components (default Set1)")
	cmd.Flags().StringVar(&labelPalette, "label-palette", "", "palette of the labels (default Set1)")
	cmd.Flags().StringVar(&opts.LegendName, "legend-name", "", "legend title")
	cmd.Flags().Float64Var(&opts.Alpha, "alpha", 0, "marker opacity (default 0.7)")
	cmd.Flags().Float64Var(&opts.FigSize.Width, "width", 0, "figure width in inches (default 12)")
	cmd.Flags().Float64Var(&opts.FigSize.Height, "height", 0, "figure height in inches (default 12)")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagFilename("model", "json")

	return cmd
}

func (c *CLI) runGMM(cmd *cobra.Command, input, modelPath string, ef embedFlags, opts plot.GMMOptions, out *outputFlags) error {
	return c.plotTo(cmd, []string{input}, out, "Mixture plot of "+input, func() (*render.Figure, error) {
		logger := loggerFromContext(cmd.Context())
		prog := newProgress(logger)

		emb, err := readEmbedding(input, ef)
		if err != nil {
			return nil, err
		}
		if emb.Labels != nil {
			opts.Labels = emb.Labels
		}
		model, err := graphio.ImportModel(modelPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("read model", "path", modelPath, "components", model.NComponents(), "type", model.CovarianceType())

		fig, err := plot.PairplotWithGMM(emb.X, model, opts)
		if err != nil {
			return nil, err
		}
		prog.done("Rendered mixture plot")
		return fig, nil
	})
}

// =============================================================================
// scree
// =============================================================================

func (c *CLI) screeCommand() *cobra.Command {
	var (
		opts plot.ScreeplotOptions
		out  outputFlags
	)

	cmd := &cobra.Command{
		Use:   "scree [matrix]",
		Short: "Plot the share of variance explained by each singular value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(cmd, func(cfg *Config) {
				opts = cfg.Scree
				mergeCommon(&opts.Common, cfg.Common)
			}); err != nil {
				return err
			}
			return c.runScree(cmd, args[0], opts, &out)
		},
	}

	addCommonFlags(cmd, &opts.Common)
	addOutputFlags(cmd, &out)
	cmd.Flags().BoolVar(&opts.NonCumulative, "non-cumulative", false, "plot each component's share instead of the running total")
	cmd.Flags().IntVar(&opts.ShowFirst, "show-first", 0, "plot only the leading components")
	cmd.Flags().Float64Var(&opts.FigSize.Width, "width", 0, "figure width in inches (default 10)")
	cmd.Flags().Float64Var(&opts.FigSize.Height, "height", 0, "figure height in inches (default 5)")

	return cmd
}

func (c *CLI) runScree(cmd *cobra.Command, input string, opts plot.ScreeplotOptions, out *outputFlags) error {
	return c.plotTo(cmd, []string{input}, out, "Scree plot of "+input, func() (*render.Figure, error) {
		prog := newProgress(loggerFromContext(cmd.Context()))

		x, err := graphio.ImportMatrix(input)
		if err != nil {
			return nil, err
		}
		fig, err := plot.Screeplot(x, opts)
		if err != nil {
			return nil, err
		}
		prog.done("Rendered scree plot")
		return fig, nil
	})
}
