package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fusionsketch/internal/fusion"
)

const (
	DefaultTermWidth  = 60
	DefaultTermHeight = 30
	lineGraphHeight   = 15
)

// Terminal writes figures to a text stream.
type Terminal struct {
	Out    io.Writer
	Width  int
	Height int
	Plain  bool
}

func NewTerminal(out io.Writer, plain bool) *Terminal {
	return &Terminal{Out: out, Width: DefaultTermWidth, Height: DefaultTermHeight, Plain: plain}
}

func (t *Terminal) Render(fig fusion.Figure) error {
	var body string
	if fig.EqualAspect {
		body = t.Scatter(fig)
	} else {
		body = t.Lines(fig)
	}

	var b strings.Builder
	b.WriteString(t.style(TitleStyle).Render(fig.Title))
	b.WriteString("\n\n")
	b.WriteString(body)
	if fig.Legend {
		b.WriteString("\n")
		b.WriteString(t.legend(fig))
	}
	b.WriteString("\n")

	_, err := io.WriteString(t.Out, b.String())
	return err
}

// Scatter rasterises every series onto a Braille canvas with the same scale
// on both axes. Square figures use a canvas with square dot extents.
func (t *Terminal) Scatter(fig fusion.Figure) string {
	w, h := t.Width, t.Height
	if fig.Square {
		// a character cell is 2x4 dots
		h = w / 2
	}
	canvas := NewCanvas(w, h)

	minX, maxX, minY, maxY := fig.Bounds()
	proj := newProjection(minX, maxX, minY, maxY, float64(canvas.DotWidth()-1), float64(canvas.DotHeight()-1), fig.EqualAspect)

	styles := make([]lipgloss.Style, len(fig.Series))
	for layer, s := range fig.Series {
		styles[layer] = SeriesStyle(s.Color)
		for i, p := range s.Points {
			x, y := proj.apply(p)
			if s.Style == fusion.StyleMarker || i == 0 {
				canvas.Set(x, y, layer)
				continue
			}
			if s.Style == fusion.StyleDashed && i%2 == 1 {
				continue
			}
			px, py := proj.apply(s.Points[i-1])
			canvas.DrawLine(px, py, x, y, layer)
		}
	}

	var grid string
	if t.Plain {
		grid = canvas.String()
	} else {
		grid = canvas.Render(styles)
	}

	footer := fmt.Sprintf("%s [%.3g, %.3g]  %s [%.3g, %.3g]", fig.XLabel, minX, maxX, fig.YLabel, minY, maxY)
	return t.style(FramePanel).Render(strings.TrimSuffix(grid, "\n")) + "\n" + t.style(Subtle).Render(footer) + "\n"
}

// Lines plots each series against its sample index with asciigraph. Reference
// lines become constant series across the longest series.
func (t *Terminal) Lines(fig fusion.Figure) string {
	longest := 0
	for _, s := range fig.Series {
		if len(s.Points) > longest {
			longest = len(s.Points)
		}
	}
	if longest == 0 {
		return t.style(Subtle).Render("(no data)") + "\n"
	}

	data := make([][]float64, 0, len(fig.Series)+len(fig.RefLines))
	colors := make([]asciigraph.AnsiColor, 0, cap(data))
	names := make([]string, 0, cap(data))
	for _, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		data = append(data, s.Points.Ys())
		colors = append(colors, ansiColor(s.Color))
		names = append(names, s.Name)
	}
	for _, ref := range fig.RefLines {
		flat := make([]float64, longest)
		for i := range flat {
			flat[i] = ref.Y
		}
		data = append(data, flat)
		colors = append(colors, ansiColor(ref.Color))
		names = append(names, ref.Name)
	}

	// legends index the colour list, so it always has one entry per series
	if t.Plain {
		for i := range colors {
			colors[i] = asciigraph.Default
		}
	}
	opts := []asciigraph.Option{
		asciigraph.Height(lineGraphHeight),
		asciigraph.Width(t.Width),
		asciigraph.Caption(fig.YLabel),
		asciigraph.SeriesColors(colors...),
	}
	if fig.Legend {
		opts = append(opts, asciigraph.SeriesLegends(names...))
	}

	graph := asciigraph.PlotMany(data, opts...)

	xMin, xMax, _, _ := fig.Bounds()
	axis := fmt.Sprintf("%s: %.2f → %.2f", fig.XLabel, xMin, xMax)
	return graph + "\n" + t.style(Subtle).Render(axis) + "\n"
}

func (t *Terminal) legend(fig fusion.Figure) string {
	parts := make([]string, 0, len(fig.Series)+len(fig.RefLines))
	for _, s := range fig.Series {
		if s.NoLegend {
			continue
		}
		parts = append(parts, t.style(SeriesStyle(s.Color)).Render("⣿ "+s.Name))
	}
	for _, ref := range fig.RefLines {
		parts = append(parts, t.style(SeriesStyle(ref.Color)).Render("┄ "+ref.Name))
	}
	return strings.Join(parts, "  ") + "\n"
}

func (t *Terminal) style(s lipgloss.Style) lipgloss.Style {
	if t.Plain {
		return lipgloss.NewStyle()
	}
	return s
}

type projection struct {
	minX, minY float64
	sx, sy     float64
	offX, offY float64
	height     float64
}

// newProjection maps data coordinates onto a w x h dot grid with y pointing
// up. With equal set both axes share the smaller scale and the drawing is
// centred.
func newProjection(minX, maxX, minY, maxY, w, h float64, equal bool) projection {
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	p := projection{minX: minX, minY: minY, sx: w / rangeX, sy: h / rangeY, height: h}
	if equal {
		s := math.Min(p.sx, p.sy)
		p.sx, p.sy = s, s
		p.offX = (w - rangeX*s) / 2
		p.offY = (h - rangeY*s) / 2
	}
	return p
}

func (p projection) apply(pt fusion.Point) (int, int) {
	x := p.offX + (pt.X-p.minX)*p.sx
	y := p.offY + (pt.Y-p.minY)*p.sy
	return int(math.Round(x)), int(math.Round(p.height - y))
}

func ansiColor(hex string) asciigraph.AnsiColor {
	switch strings.ToLower(hex) {
	case "#ff0000", "#ff4444":
		return asciigraph.Red
	case "#0000ff":
		return asciigraph.Blue
	case "#00bfbf", "#00ffff":
		return asciigraph.Cyan
	case "#888888":
		return asciigraph.Gray
	}
	return asciigraph.Default
}
