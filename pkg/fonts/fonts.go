// Package fonts registers the typefaces used for figure text.
//
// The Go font family ships with golang.org/x/image, so figures render
// identically on every machine without system font lookups. Liberation,
// which gonum/plot registers on import, remains available as a fallback.
package fonts

import (
	"fmt"
	"sync"

	stdfnt "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot/font"
)

// Typeface is the name under which the Go fonts are registered.
const Typeface font.Typeface = "Go"

// Fallback is the typeface registered by gonum/plot itself.
var Fallback = font.Font{Typeface: "Liberation", Variant: "Sans"}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the Go font family to font.DefaultCache.
// It is safe to call repeatedly; registration happens once.
func Register() error {
	registerOnce.Do(func() {
		var coll font.Collection
		for _, f := range []struct {
			ttf    []byte
			weight stdfnt.Weight
			style  stdfnt.Style
		}{
			{goregular.TTF, stdfnt.WeightNormal, stdfnt.StyleNormal},
			{gobold.TTF, stdfnt.WeightBold, stdfnt.StyleNormal},
			{goitalic.TTF, stdfnt.WeightNormal, stdfnt.StyleItalic},
		} {
			face, err := opentype.Parse(f.ttf)
			if err != nil {
				registerErr = fmt.Errorf("parse go font: %w", err)
				return
			}
			coll = append(coll, font.Face{
				Font: font.Font{Typeface: Typeface, Weight: f.weight, Style: f.style},
				Face: face,
			})
		}
		font.DefaultCache.Add(coll)
	})
	return registerErr
}

// Regular returns the regular Go font at size.
// Register must have succeeded, otherwise the fallback is returned.
func Regular(size font.Length) font.Font {
	if Register() != nil {
		return font.From(Fallback, size)
	}
	return font.Font{Typeface: Typeface, Size: size}
}

// Bold returns the bold Go font at size.
func Bold(size font.Length) font.Font {
	f := Regular(size)
	f.Weight = stdfnt.WeightBold
	return f
}
