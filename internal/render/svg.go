package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/fusionsketch/internal/fusion"
)

const (
	DefaultSVGWidth  = 800
	DefaultSVGHeight = 480
	svgMargin        = 60
)

// SVG writes each figure to <Dir>/<slug of title>.svg.
type SVG struct {
	Dir     string
	Width   int
	Height  int
	Written []string
}

func NewSVG(dir string) *SVG {
	return &SVG{Dir: dir, Width: DefaultSVGWidth, Height: DefaultSVGHeight}
}

func (s *SVG) Render(fig fusion.Figure) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(s.Dir, Slug(fig.Title)+".svg")
	if err := os.WriteFile(path, []byte(FigureToSVG(fig, s.Width, s.Height)), 0644); err != nil {
		return err
	}
	s.Written = append(s.Written, path)
	return nil
}

// Slug turns a title into a file name: lower case, runs of other characters
// collapsed to a single dash.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "figure"
	}
	return slug
}

// FigureToSVG creates a standalone SVG document. Square figures use the
// smaller of width and height for both sides.
func FigureToSVG(fig fusion.Figure, width, height int) string {
	if fig.Square {
		side := min(width, height)
		width, height = side, side
	}

	plotW := float64(width - 2*svgMargin)
	plotH := float64(height - 2*svgMargin)

	minX, maxX, minY, maxY := fig.Bounds()
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	// Add padding
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	sx, sy := plotW/rangeX, plotH/rangeY
	offX, offY := 0.0, 0.0
	if fig.EqualAspect {
		s := math.Min(sx, sy)
		offX = (plotW - rangeX*s) / 2
		offY = (plotH - rangeY*s) / 2
		sx, sy = s, s
	}
	px := func(x float64) float64 { return svgMargin + offX + (x-minX)*sx }
	py := func(y float64) float64 { return float64(height) - svgMargin - offY - (y-minY)*sy }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>
`, width/2, svgMargin/2, escape(fig.Title)))

	left, right := float64(svgMargin), float64(width-svgMargin)
	top, bottom := float64(svgMargin), float64(height-svgMargin)

	if fig.Grid {
		sb.WriteString(`<g stroke="#dddddd" stroke-width="1">` + "\n")
		for i := 0; i <= 5; i++ {
			gx := left + float64(i)*(right-left)/5
			gy := top + float64(i)*(bottom-top)/5
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", gx, top, gx, bottom))
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", left, gy, right, gy))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#333333"/>
`, left, top, right-left, bottom-top))

	for _, s := range fig.Series {
		if len(s.Points) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="%.1f" stroke-opacity="%.2f"%s points="`,
			colorOr(s.Color, "#000000"), widthOr(s.Width), alphaOr(s.Alpha), dash(s.Style)))
		for i, p := range s.Points {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(p.X), py(p.Y)))
		}
		sb.WriteString(`"/>` + "\n")
	}

	for _, ref := range fig.RefLines {
		y := py(ref.Y)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5" stroke-dasharray="6,4"/>
`, left, y, right, y, colorOr(ref.Color, "#ff0000")))
	}

	if fig.XLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="12">%s</text>
`, width/2, height-svgMargin/3, escape(fig.XLabel)))
	}
	if fig.YLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="12" transform="rotate(-90 %d %d)">%s</text>
`, svgMargin/3, height/2, svgMargin/3, height/2, escape(fig.YLabel)))
	}

	if fig.Legend {
		writeLegend(&sb, fig, right)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeLegend(sb *strings.Builder, fig fusion.Figure, right float64) {
	y := float64(svgMargin) + 16
	x := right - 140
	entry := func(name, color string, dashed bool) {
		style := ""
		if dashed {
			style = ` stroke-dasharray="6,4"`
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3"%s/>
<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="12">%s</text>
`, x, y-4, x+24, y-4, color, style, x+30, y, escape(name)))
		y += 18
	}
	for _, s := range fig.Series {
		if s.NoLegend {
			continue
		}
		entry(s.Name, colorOr(s.Color, "#000000"), s.Style == fusion.StyleDashed)
	}
	for _, ref := range fig.RefLines {
		entry(ref.Name, colorOr(ref.Color, "#ff0000"), true)
	}
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

func widthOr(w float64) float64 {
	if w <= 0 {
		return 1.5
	}
	return w
}

func alphaOr(a float64) float64 {
	if a <= 0 || a > 1 {
		return 1
	}
	return a
}

func dash(style fusion.Style) string {
	if style == fusion.StyleDashed {
		return ` stroke-dasharray="4,3"`
	}
	return ""
}
