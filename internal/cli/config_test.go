package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/plot"
	"github.com/matzehuels/graphplot/pkg/transform"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	tomlPath := writeFile(t, dir, "plots.toml", `
[common]
context = "paper"

[heatmap]
title = "Connectome"
cmap = "coolwarm"
transform = "log"
figsize = { width = 8, height = 6 }
inner = ["a", "b"]

[scree]
show_first = 3
`)
	yamlPath := writeFile(t, dir, "plots.yaml", `
common:
  context: paper
heatmap:
  title: Connectome
  cmap: coolwarm
  transform: log
  figsize: {width: 8, height: 6}
  inner: [a, b]
scree:
  show_first: 3
`)

	for _, path := range []string{tomlPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			cfg, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, "paper", cfg.Common.Context)
			assert.Equal(t, "Connectome", cfg.Heatmap.Title)
			assert.Equal(t, "coolwarm", cfg.Heatmap.ColorMap)
			assert.Equal(t, transform.Log, cfg.Heatmap.Transform)
			assert.Equal(t, plot.FigSize{Width: 8, Height: 6}, cfg.Heatmap.FigSize)
			assert.Equal(t, []string{"a", "b"}, []string(cfg.Heatmap.Inner))
			assert.Equal(t, 3, cfg.Scree.ShowFirst)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"Missing", filepath.Join(dir, "none.toml"), errors.ErrCodeFileNotFound},
		{"Extension", writeFile(t, dir, "plots.ini", "[heatmap]\n"), errors.ErrCodeUnsupported},
		{"UnknownTOMLKey", writeFile(t, dir, "bad.toml", "[heatmap]\ncolour = \"red\"\n"), errors.ErrCodeInvalidFormat},
		{"UnknownYAMLKey", writeFile(t, dir, "bad.yaml", "heatmap:\n  colour: red\n"), errors.ErrCodeInvalidFormat},
		{"Syntax", writeFile(t, dir, "broken.toml", "[heatmap\n"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), err.Error())
		})
	}
}

func TestMergeCommon(t *testing.T) {
	dst := plot.Common{Title: "Mine"}
	mergeCommon(&dst, plot.Common{Title: "Base", Context: "poster", FontScale: 2})
	assert.Equal(t, plot.Common{Title: "Mine", Context: "poster", FontScale: 2}, dst)
}

func TestApplyConfigFlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plots.toml", `
[common]
font_scale = 1.5

[heatmap]
title = "From file"
context = "paper"
cmap = "coolwarm"
`)

	var opts plot.HeatmapOptions
	cmd := &cobra.Command{Use: "heatmap"}
	addCommonFlags(cmd, &opts.Common)
	cmd.Flags().StringVar(&opts.ColorMap, "cmap", "", "")
	require.NoError(t, cmd.ParseFlags([]string{"--title", "From flag"}))

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = path
	require.NoError(t, c.applyConfig(cmd, func(cfg *Config) {
		opts = cfg.Heatmap
		mergeCommon(&opts.Common, cfg.Common)
	}))

	assert.Equal(t, "From flag", opts.Title)
	assert.Equal(t, "paper", opts.Context)
	assert.Equal(t, 1.5, opts.FontScale)
	assert.Equal(t, "coolwarm", opts.ColorMap)
}

func TestApplyConfigWithoutFile(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	called := false
	require.NoError(t, c.applyConfig(&cobra.Command{}, func(*Config) { called = true }))
	assert.False(t, called)
}

func TestOutputFlagsResolve(t *testing.T) {
	tests := []struct {
		name       string
		flags      outputFlags
		input      string
		wantPath   string
		wantFormat string
	}{
		{"Defaults", outputFlags{}, "data/ring.csv", "ring.svg", "svg"},
		{"Format", outputFlags{format: "png"}, "ring.edges", "ring.png", "png"},
		{"OutputExtension", outputFlags{output: "out/fig.pdf"}, "ring.csv", "out/fig.pdf", "pdf"},
		{"OutputWithoutExtension", outputFlags{output: "fig"}, "ring.csv", "fig", "svg"},
		{"FormatWins", outputFlags{output: "fig.pdf", format: "eps"}, "ring.csv", "fig.pdf", "eps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, format := tt.flags.resolve(tt.input)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantFormat, format)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b c", "d"}, splitList("a, b c ,d"))
}

func TestConfigFlagEndToEnd(t *testing.T) {
	dir := t.TempDir()
	adj := writeFile(t, dir, "ring.csv", ring4)
	cfg := writeFile(t, dir, "plots.yaml", "heatmap:\n  transform: cube\n")

	_, err := execute(t, "--config", cfg, "heatmap", adj, "-o", filepath.Join(dir, "a.svg"))
	require.Error(t, err, "config values are validated like flags")
	assert.Equal(t, errors.ErrCodeInvalidValue, errors.GetCode(err))

	_, err = execute(t, "--config", cfg, "heatmap", adj, "--transform", "binarize", "-o", filepath.Join(dir, "a.svg"))
	assert.NoError(t, err)
}
