package render

import (
	"bytes"
	"image/color"
	"io"
	"slices"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/matzehuels/graphplot/pkg/errors"
	"github.com/matzehuels/graphplot/pkg/fonts"
	"github.com/matzehuels/graphplot/pkg/observability"
)

// Default subplot parameters, as figure fractions.
const (
	marginLeft   = 0.125
	marginRight  = 0.9
	marginBottom = 0.11
	marginTop    = 0.88
	gridSpace    = 0.2
)

// Formats lists the output formats Encode accepts.
var Formats = []string{"svg", "png", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// Figure is a drawing of one or more axes on a fixed-size page. It is the
// handle every plot function returns; callers may keep adding to its axes
// before encoding it.
type Figure struct {
	Width, Height vg.Length

	// Title is drawn centered at the top of the figure.
	Title      string
	TitleStyle text.Style

	Background color.Color

	// Legend, when it has entries, is drawn vertically centered to the right
	// of the axes.
	Legend    plot.Legend
	LegendPad vg.Length

	// DPI is the resolution of raster encodings. Zero uses the vgimg default.
	DPI int

	Style Style

	axes []*Axes
}

// NewFigure returns an empty figure of the given size in inches, styled with
// the current plotting context.
func NewFigure(width, height float64) *Figure {
	style := CurrentStyle()
	legend := plot.NewLegend()
	legend.Left = true
	legend.TextStyle.Font = fontFor(style.LegendSize)
	legend.ThumbnailWidth = style.LegendSize

	return &Figure{
		Width:  vg.Length(width) * vg.Inch,
		Height: vg.Length(height) * vg.Inch,
		TitleStyle: text.Style{
			Color:   color.Black,
			Font:    fontFor(style.FontSize * 1.2),
			XAlign:  draw.XCenter,
			YAlign:  draw.YTop,
			Handler: plot.DefaultTextHandler,
		},
		Background: color.White,
		Legend:     legend,
		LegendPad:  vg.Points(10),
		Style:      style,
	}
}

// AddAxes adds an axes placed at rect.
func (f *Figure) AddAxes(rect Rect) *Axes {
	a := newAxes(f, rect, f.Style)
	f.axes = append(f.axes, a)
	return a
}

// Subplot adds a single axes using the default margins.
func (f *Figure) Subplot() *Axes {
	return f.Subplots(1, 1)[0][0]
}

// Subplots adds a rows×cols grid of axes using the default margins and
// spacing. The result is indexed [row][col] with row 0 at the top.
func (f *Figure) Subplots(rows, cols int) [][]*Axes {
	return f.SubplotsIn(rows, cols, Rect{
		X: marginLeft, Y: marginBottom,
		W: marginRight - marginLeft, H: marginTop - marginBottom,
	}, gridSpace)
}

// SubplotsIn adds a grid of axes inside area. space is the gap between
// cells as a fraction of the average cell size.
func (f *Figure) SubplotsIn(rows, cols int, area Rect, space float64) [][]*Axes {
	cw := area.W / (float64(cols) + space*float64(cols-1))
	ch := area.H / (float64(rows) + space*float64(rows-1))
	grid := make([][]*Axes, rows)
	for r := range grid {
		grid[r] = make([]*Axes, cols)
		for c := range grid[r] {
			grid[r][c] = f.AddAxes(Rect{
				X: area.X + float64(c)*cw*(1+space),
				Y: area.Y + area.H - ch - float64(r)*ch*(1+space),
				W: cw,
				H: ch,
			})
		}
	}
	return grid
}

// Axes returns the figure's top-level axes in creation order.
func (f *Figure) Axes() []*Axes { return slices.Clone(f.axes) }

// Draw renders the figure onto c.
func (f *Figure) Draw(c draw.Canvas) {
	if f.Background != nil {
		c.SetColor(f.Background)
		c.Fill(c.Rectangle.Path())
	}

	size := c.Size()
	right := c.Min.X
	for _, a := range f.axes {
		box := vg.Rectangle{
			Min: vg.Point{X: c.Min.X + vg.Length(a.Rect.X)*size.X, Y: c.Min.Y + vg.Length(a.Rect.Y)*size.Y},
			Max: vg.Point{X: c.Min.X + vg.Length(a.Rect.X+a.Rect.W)*size.X, Y: c.Min.Y + vg.Length(a.Rect.Y+a.Rect.H)*size.Y},
		}
		main := a.layout(box)
		a.draw(c, main)
		right = max(right, main.Max.X)
		for _, ap := range a.appended {
			ap.ax.draw(c, ap.ax.placed)
			right = max(right, ap.ax.placed.Max.X)
		}
	}

	if f.Title != "" {
		c.FillText(f.TitleStyle, vg.Point{X: c.Center().X, Y: c.Max.Y - 0.02*size.Y}, f.Title)
	}

	f.drawLegend(c, right)
}

func (f *Figure) drawLegend(c draw.Canvas, right vg.Length) {
	lc := c
	lc.Min.X = right + f.LegendPad
	r := f.Legend.Rectangle(lc)
	if r.Size().Y == 0 {
		return
	}
	// Center the legend vertically.
	lc.Max.Y = c.Center().Y + r.Size().Y/2
	f.Legend.Top = true
	f.Legend.Draw(lc)
}

// Encode renders the figure in the given format ("svg", "png", "pdf",
// "eps", "jpg", "tiff", ...).
func (f *Figure) Encode(format string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo renders the figure in the given format and writes it to w.
func (f *Figure) WriteTo(w io.Writer, format string) (n int64, err error) {
	start := time.Now()
	defer func() {
		observability.Plot().OnEncode(format, int(n), time.Since(start), err)
	}()

	cw, err := f.canvas(format)
	if err != nil {
		return 0, err
	}
	f.Draw(draw.New(cw))
	n, err = cw.WriteTo(w)
	if err != nil {
		return n, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return n, nil
}

func (f *Figure) canvas(format string) (vg.CanvasWriterTo, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if !slices.Contains(Formats, format) {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"format must be one of {%s}, not %q", strings.Join(Formats, ", "), format)
	}
	if f.DPI > 0 {
		img := vgimg.NewWith(vgimg.UseWH(f.Width, f.Height), vgimg.UseDPI(f.DPI))
		switch format {
		case "png":
			return vgimg.PngCanvas{Canvas: img}, nil
		case "jpg", "jpeg":
			return vgimg.JpegCanvas{Canvas: img}, nil
		case "tif", "tiff":
			return vgimg.TiffCanvas{Canvas: img}, nil
		}
	}
	cw, err := draw.NewFormattedCanvas(f.Width, f.Height, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "format %q", format)
	}
	return cw, nil
}

// fontFor returns the figure font at size.
func fontFor(size vg.Length) font.Font {
	return fonts.Regular(size)
}
