package render

import (
	"sync"

	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/graphplot/pkg/errors"
)

// Plotting contexts scale every size preset relative to "notebook".
var contextScales = map[string]float64{
	"paper":    0.8,
	"notebook": 1,
	"talk":     1.5,
	"poster":   2,
}

// Contexts lists the accepted plotting context names.
var Contexts = []string{"paper", "notebook", "talk", "poster"}

// Style holds the size presets applied to new figures.
type Style struct {
	Context   string
	FontScale float64

	FontSize   vg.Length // axis labels, titles
	TickSize   vg.Length // tick labels
	LegendSize vg.Length
	LineWidth  vg.Length // plotted lines
	AxisWidth  vg.Length // axis lines and ticks
	TickLength vg.Length
	MarkerSize vg.Length
}

// NewStyle returns the presets for a plotting context with font sizes
// multiplied by fontScale.
func NewStyle(context string, fontScale float64) (Style, error) {
	scale, ok := contextScales[context]
	if !ok {
		return Style{}, errors.ValidateOneOf("context", context, Contexts)
	}
	if err := errors.ValidatePositive("font_scale", fontScale); err != nil {
		return Style{}, err
	}
	fs := vg.Length(scale * fontScale)
	s := vg.Length(scale)
	return Style{
		Context:    context,
		FontScale:  fontScale,
		FontSize:   12 * fs,
		TickSize:   11 * fs,
		LegendSize: 11 * fs,
		LineWidth:  1.5 * s,
		AxisWidth:  1.25 * s,
		TickLength: 6 * s,
		MarkerSize: 6 * s,
	}, nil
}

// DefaultStyle is the style in effect outside any UseContext scope.
var DefaultStyle = func() Style {
	s, _ := NewStyle("notebook", 1)
	return s
}()

var (
	scopeMu sync.Mutex

	currentMu sync.RWMutex
	current   = DefaultStyle
)

// CurrentStyle returns the style new figures pick up.
func CurrentStyle() Style {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// UseContext makes the named plotting context current until restore is
// called. Scopes are exclusive: a second UseContext blocks until the first
// scope is restored, so concurrent plot calls never observe each other's
// presets. restore must be called exactly once.
func UseContext(context string, fontScale float64) (restore func(), err error) {
	style, err := NewStyle(context, fontScale)
	if err != nil {
		return nil, err
	}

	scopeMu.Lock()
	currentMu.Lock()
	prev := current
	current = style
	currentMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			currentMu.Lock()
			current = prev
			currentMu.Unlock()
			scopeMu.Unlock()
		})
	}, nil
}
