package render

import (
	"image/color"
	"slices"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/matzehuels/graphplot/pkg/errors"
)

// =============================================================================
// Categorical Palettes
// =============================================================================

// PaletteSpec selects categorical colors. At most one variant may be set:
// a palette name, an explicit color list, or a category-to-color map. The
// zero value selects DefaultPalette.
type PaletteSpec struct {
	Name   string
	Colors []color.Color
	Map    map[string]color.Color
}

// DefaultPalette is the qualitative palette used when none is given.
const DefaultPalette = "Set1"

// NamedPalette returns a PaletteSpec for a palette name.
func NamedPalette(name string) PaletteSpec { return PaletteSpec{Name: name} }

// Validate checks that at most one variant is set.
func (p PaletteSpec) Validate() error {
	set := 0
	if p.Name != "" {
		set++
	}
	if p.Colors != nil {
		set++
	}
	if p.Map != nil {
		set++
	}
	if set > 1 {
		return errors.New(errors.ErrCodeInvalidType,
			"palette must be a name, a color list or a map, not several at once")
	}
	return nil
}

// Assign maps every category to a color. Named palettes and color lists are
// consumed in category order, cycling when there are more categories than
// colors. A map must cover every category.
func (p PaletteSpec) Assign(categories []string) (map[string]color.Color, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make(map[string]color.Color, len(categories))
	if p.Map != nil {
		for _, c := range categories {
			clr, ok := p.Map[c]
			if !ok {
				return nil, errors.New(errors.ErrCodeKeyNotFound, "palette has no color for %q", c)
			}
			out[c] = clr
		}
		return out, nil
	}

	colors := p.Colors
	if colors == nil {
		name := p.Name
		if name == "" {
			name = DefaultPalette
		}
		var err error
		if colors, err = Palette(name, len(categories)); err != nil {
			return nil, err
		}
	}
	if len(colors) == 0 && len(categories) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidValue, "palette has no colors")
	}
	for i, c := range categories {
		out[c] = colors[i%len(colors)]
	}
	return out, nil
}

// Palette returns n colors of the named ColorBrewer palette. Requests larger
// than the palette repeat it from the start; a "_r" suffix reverses it.
func Palette(name string, n int) ([]color.Color, error) {
	if n <= 0 {
		return nil, nil
	}
	base, reversed := strings.CutSuffix(name, "_r")
	sizes := brewerSizes(base)
	if len(sizes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidValue, "unknown palette %q", name)
	}
	size := min(max(n, sizes[0]), sizes[len(sizes)-1])
	p, err := brewer.GetPalette(brewer.TypeAny, base, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidValue, err, "palette %q", name)
	}
	colors := slices.Clone(p.Colors())
	if reversed {
		slices.Reverse(colors)
	}
	out := make([]color.Color, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out, nil
}

// brewerSizes lists the color counts a ColorBrewer palette is defined for.
func brewerSizes(name string) []int {
	var sizes []int
	if p, ok := brewer.QualitativePalettes[name]; ok {
		for k := range p {
			sizes = append(sizes, k)
		}
	}
	if p, ok := brewer.SequentialPalettes[name]; ok {
		for k := range p {
			sizes = append(sizes, k)
		}
	}
	if p, ok := brewer.DivergingPalettes[name]; ok {
		for k := range p {
			sizes = append(sizes, k)
		}
	}
	slices.Sort(sizes)
	return sizes
}

// Desaturate scales the HSL saturation of c by prop.
func Desaturate(c color.Color, prop float64) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	h, s, l := cf.Hsl()
	return colorful.Hsl(h, s*prop, l).Clamped()
}

// DesaturateAll applies Desaturate to every color.
func DesaturateAll(colors []color.Color, prop float64) []color.Color {
	out := make([]color.Color, len(colors))
	for i, c := range colors {
		out[i] = Desaturate(c, prop)
	}
	return out
}

// WithAlpha returns c with opacity alpha in [0, 1].
func WithAlpha(c color.Color, alpha float64) color.Color {
	if c == nil {
		return nil
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*alpha + 0.5)
	return n
}

// =============================================================================
// Continuous Colormaps
// =============================================================================

// DefaultColorMap is the diverging map used by heatmaps.
const DefaultColorMap = "RdBu_r"

var colorMaps = map[string]func() palette.ColorMap{
	"coolwarm":           func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"RdBu":               func() palette.ColorMap { return palette.Reverse(moreland.SmoothBlueRed()) },
	"PuOr":               func() palette.ColorMap { return moreland.SmoothPurpleOrange() },
	"PRGn":               func() palette.ColorMap { return moreland.SmoothGreenPurple() },
	"BrBG":               func() palette.ColorMap { return moreland.SmoothBlueTan() },
	"RdYlGn":             func() palette.ColorMap { return moreland.SmoothGreenRed() },
	"blackbody":          moreland.BlackBody,
	"extended_blackbody": moreland.ExtendedBlackBody,
	"kindlmann":          moreland.Kindlmann,
	"extended_kindlmann": moreland.ExtendedKindlmann,
}

// ColorMap resolves a colormap name. Diverging maps, the moreland luminance
// maps and every sequential ColorBrewer palette are accepted; a "_r" suffix
// reverses the map. "RdBu_r" runs from blue (low) to red (high).
func ColorMap(name string) (palette.ColorMap, error) {
	if name == "" {
		name = DefaultColorMap
	}
	if name == "RdBu_r" {
		return moreland.SmoothBlueRed(), nil
	}
	base, reversed := strings.CutSuffix(name, "_r")

	var cm palette.ColorMap
	if mk, ok := colorMaps[base]; ok {
		cm = mk()
	} else {
		seq, ok := brewer.SequentialPalettes[base]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidValue, "unknown colormap %q", name)
		}
		sizes := brewerSizes(base)
		// Brewer sequences run light to dark; luminance maps must brighten.
		colors := slices.Clone(seq[sizes[len(sizes)-1]].Colors())
		slices.Reverse(colors)
		var err error
		cm, err = moreland.NewLuminance(colors)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidValue, err, "colormap %q", name)
		}
		reversed = !reversed
	}
	if reversed {
		cm = palette.Reverse(cm)
	}
	return cm, nil
}

// Sample returns n evenly spaced colors of cm across [Min, Max].
func Sample(cm palette.ColorMap, n int) palette.Palette {
	colors := make([]color.Color, n)
	lo, hi := cm.Min(), cm.Max()
	for i := range colors {
		v := lo
		if n > 1 {
			v = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		c, err := cm.At(v)
		if err != nil {
			c = color.Transparent
		}
		colors[i] = c
	}
	return sampled(colors)
}

type sampled []color.Color

func (s sampled) Colors() []color.Color { return s }
