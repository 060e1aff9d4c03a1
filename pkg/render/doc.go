// Package render provides the drawing surface used by every plot.
//
// # Overview
//
// A [Figure] is a fixed-size page holding one or more [Axes]. Each Axes
// wraps a gonum [plot.Plot] for ranges, scales, ticks and legends, and adds
// what statistical graphics need on top of it:
//
//   - placement in figure fractions and regular subplot grids
//   - marginal axes appended to any side ([Axes.Append]), carved out of the
//     parent's rectangle and stacked outwards
//   - titles offset above the data area by an explicit pad
//   - a figure-level legend on the right
//
// Figures are encoded with [Figure.Encode] to SVG, PNG, PDF, EPS, JPEG or
// TIFF through gonum's vg backends.
//
// # Plotting Contexts
//
// Sizes of fonts, lines and ticks follow a plotting context ("paper",
// "notebook", "talk", "poster") and a font scale. [UseContext] makes a
// context current for the duration of a plot call:
//
//	restore, err := render.UseContext("talk", 1)
//	if err != nil {
//		return nil, err
//	}
//	defer restore()
//	fig := render.NewFigure(10, 10)
//
// # Colors
//
// [PaletteSpec] resolves categorical colors from ColorBrewer names, explicit
// lists or category maps. [ColorMap] resolves continuous maps, with "RdBu_r"
// as the default diverging map.
//
// [plot.Plot]: https://pkg.go.dev/gonum.org/v1/plot#Plot
package render
