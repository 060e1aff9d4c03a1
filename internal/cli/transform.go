package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/graphplot/pkg/io"
	"github.com/matzehuels/graphplot/pkg/transform"
)

func (c *CLI) transformCommand() *cobra.Command {
	var (
		method transform.Method
		output string
	)

	cmd := &cobra.Command{
		Use:   "transform [matrix]",
		Short: "Apply a matrix transform and write the result",
		Long: `Apply a matrix transform and write the result as CSV or JSON.

The pass-to-ranks methods replace weights by their normalized ranks:
simple-all ranks every entry, simple-nonzero only the nonzero ones and
zero-boost ranks the nonzero entries above the zeros.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTransform(cmd, args[0], method, output)
		},
	}

	cmd.Flags().StringVarP((*string)(&method), "method", "m", "", "transform: "+strings.Join(transform.Methods, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .csv or .json (default: <input>_<method>.csv)")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func (c *CLI) runTransform(cmd *cobra.Command, input string, method transform.Method, output string) error {
	prog := newProgress(loggerFromContext(cmd.Context()))

	m, err := graphio.ImportMatrix(input)
	if err != nil {
		return err
	}
	out, err := transform.Apply(m, method)
	if err != nil {
		return err
	}
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		output = base + "_" + string(method) + ".csv"
	}
	if err := graphio.ExportMatrix(out, output); err != nil {
		return err
	}
	prog.done("Transformed matrix")

	r, cols := out.Dims()
	printSuccess(c.Out, "Applied %s to %s", method, input)
	printShape(c.Out, r, cols)
	printFile(c.Out, output)
	return nil
}
