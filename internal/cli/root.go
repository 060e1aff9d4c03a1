package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphplot/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "graphplot draws statistical plots of graphs and embeddings",
		Long: `graphplot renders adjacency matrices, embeddings and fitted mixture models as
heatmaps, grid plots, pair plots, degree and edge distributions, network
drawings and scree plots, with nodes grouped by hierarchical labels.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			installHooks(c.Logger)
			c.openCache()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML or YAML file with plot options (flags take precedence)")
	_ = root.MarkPersistentFlagFilename("config", "toml", "yaml", "yml")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "always redraw instead of reusing cached artifacts")

	root.AddCommand(c.heatmapCommand())
	root.AddCommand(c.gridplotCommand())
	root.AddCommand(c.pairplotCommand())
	root.AddCommand(c.gmmCommand())
	root.AddCommand(c.degreeCommand())
	root.AddCommand(c.edgeCommand())
	root.AddCommand(c.networkCommand())
	root.AddCommand(c.screeCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.completionCommand())

	return root
}
