package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/plot"
)

// Config is the file form of the plot options. Every section is optional;
// the common section fills the title, context and font scale of plots that
// leave them unset.
//
//	[common]
//	context = "paper"
//
//	[heatmap]
//	cmap = "coolwarm"
//	transform = "log"
//	figsize = { width = 8, height = 8 }
type Config struct {
	Common  plot.Common             `toml:"common" yaml:"common"`
	Heatmap plot.HeatmapOptions     `toml:"heatmap" yaml:"heatmap"`
	Grid    plot.GridplotOptions    `toml:"gridplot" yaml:"gridplot"`
	Pair    plot.PairplotOptions    `toml:"pairplot" yaml:"pairplot"`
	GMM     plot.GMMOptions         `toml:"gmm" yaml:"gmm"`
	Degree  plot.DegreeplotOptions  `toml:"degree" yaml:"degree"`
	Edge    plot.EdgeplotOptions    `toml:"edge" yaml:"edge"`
	Network plot.NetworkplotOptions `toml:"network" yaml:"network"`
	Scree   plot.ScreeplotOptions   `toml:"scree" yaml:"scree"`
}

// LoadConfig decodes a TOML (.toml) or YAML (.yaml, .yml) config file.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config")
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "config must be .toml, .yaml or .yml, not %q", ext)
	}
	return &cfg, nil
}

// mergeCommon fills the unset fields of dst from base.
func mergeCommon(dst *plot.Common, base plot.Common) {
	if dst.Title == "" {
		dst.Title = base.Title
	}
	if dst.Context == "" {
		dst.Context = base.Context
	}
	if dst.FontScale == 0 {
		dst.FontScale = base.FontScale
	}
}

// applyConfig loads --config, lets apply copy its section into the options
// the command's flags are bound to, and then sets the flags given on the
// command line again so that they win over file values.
func (c *CLI) applyConfig(cmd *cobra.Command, apply func(*Config)) error {
	if c.configPath == "" {
		return nil
	}
	changed := map[string]string{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	apply(cfg)
	c.Logger.Debug("loaded config", "path", c.configPath, "flags", len(changed))

	for name, value := range changed {
		if err := cmd.Flags().Set(name, value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "flag --%s", name)
		}
	}
	return nil
}
