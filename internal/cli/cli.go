// Package cli implements the graphplot command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/graphplot/pkg/buildinfo"
	"github.com/matzehuels/graphplot/pkg/cache"
	"github.com/matzehuels/graphplot/pkg/hier"
	graphio "github.com/matzehuels/graphplot/pkg/io"
	"github.com/matzehuels/graphplot/pkg/plot"
	"github.com/matzehuels/graphplot/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "graphplot"

	// defaultFormat is the output format when neither --format nor the
	// output extension names one.
	defaultFormat = "svg"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives the status summary printed after each command.
	Out io.Writer

	configPath string
	noCache    bool
	cache      cache.Cache
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		cache:  cache.NewNullCache(),
	}
}

// openCache switches to the on-disk artifact cache unless --no-cache is set.
// A cache that cannot be opened leaves caching off.
func (c *CLI) openCache() {
	if c.noCache {
		return
	}
	dir, err := cache.DefaultDir()
	if err == nil {
		var fc *cache.FileCache
		if fc, err = cache.NewFileCache(dir); err == nil {
			c.cache = fc
			return
		}
	}
	c.Logger.Debug("artifact cache disabled", "err", err)
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Shared Flags
// =============================================================================

// outputFlags are the artifact flags every plot command accepts.
type outputFlags struct {
	output string
	format string
	dpi    int
}

func addOutputFlags(cmd *cobra.Command, o *outputFlags) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().IntVar(&o.dpi, "dpi", 0, "resolution of raster formats")
}

func addCommonFlags(cmd *cobra.Command, c *plot.Common) {
	cmd.Flags().StringVar(&c.Title, "title", "", "plot title")
	cmd.Flags().StringVar(&c.Context, "context", "", "plotting context: "+strings.Join(render.Contexts, ", "))
	cmd.Flags().Float64Var(&c.FontScale, "font-scale", 0, "multiplier for context font sizes")
}

// resolve returns the output path and format for a plot of input.
func (o *outputFlags) resolve(input string) (path, format string) {
	format = o.format
	if o.output != "" {
		if format == "" {
			format = graphio.FormatFromPath(o.output, defaultFormat)
		}
		return o.output, format
	}
	if format == "" {
		format = defaultFormat
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + "." + format, format
}

// keyExemptFlags do not change the rendered bytes.
var keyExemptFlags = map[string]bool{"output": true, "config": true, "no-cache": true, "verbose": true, "help": true}

// artifactKey identifies the artifact cmd renders from inputs in format.
// Flags marked as filenames contribute the contents of their file.
func (c *CLI) artifactKey(cmd *cobra.Command, inputs []string, format string) (string, error) {
	key := cache.NewKey(cmd.CommandPath()).
		Add("version", buildinfo.Version).
		Add("format", format)
	for i, in := range inputs {
		if err := key.AddFile("input"+strconv.Itoa(i), in); err != nil {
			return "", err
		}
	}
	if c.configPath != "" {
		if err := key.AddFile("config", c.configPath); err != nil {
			return "", err
		}
	}

	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || keyExemptFlags[f.Name] {
			return
		}
		v := f.Value.String()
		key.Add(f.Name, v)
		if _, ok := f.Annotations[cobra.BashCompFilenameExt]; ok && v != "" {
			err = key.AddFile(f.Name+"@", v)
		}
	})
	return key.String(), err
}

// plotTo writes the figure drawn from inputs to --output, or next to the
// first input, and reports it under summary. Cached artifacts skip draw.
func (c *CLI) plotTo(cmd *cobra.Command, inputs []string, o *outputFlags, summary string, draw func() (*render.Figure, error)) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	path, format := o.resolve(inputs[0])

	key, err := c.artifactKey(cmd, inputs, format)
	if err != nil {
		return err
	}
	data, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Debug("cache read failed", "err", err)
	}
	if !hit {
		fig, err := draw()
		if err != nil {
			return err
		}
		fig.DPI = o.dpi
		if data, err = fig.Encode(format); err != nil {
			return err
		}
		if err := c.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			logger.Debug("cache write failed", "err", err)
		}
	}

	if err := graphio.WriteArtifact(path, data); err != nil {
		return err
	}
	if hit {
		summary += StyleDim.Render(" (cached)")
	}
	printSuccess(c.Out, "%s", summary)
	printFile(c.Out, path)
	return nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// readLabels reads an optional label file.
func readLabels(path string) (hier.Labels, error) {
	if path == "" {
		return nil, nil
	}
	return graphio.ImportLabels(path)
}

// splitList parses a comma-separated flag value. Empty yields nil.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
