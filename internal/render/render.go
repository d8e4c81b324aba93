// Package render draws dashboard figures as SVG using go-chart.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/leapstack-labs/launchdash/internal/dashboard"
)

// Size is the pixel size of a rendered chart.
type Size struct {
	Width  int
	Height int
}

// Default chart sizes.
var (
	PieSize     = Size{Width: 520, Height: 420}
	ScatterSize = Size{Width: 960, Height: 420}
)

// Figure renders fig with the renderer matching its kind.
func Figure(w io.Writer, fig dashboard.Figure, size Size) error {
	switch fig.Kind {
	case dashboard.KindPie:
		return Pie(w, fig, size)
	case dashboard.KindScatter:
		return Scatter(w, fig, size)
	default:
		return fmt.Errorf("unsupported figure kind %q", fig.Kind)
	}
}

// SVG renders fig and returns the markup.
func SVG(fig dashboard.Figure, size Size) (string, error) {
	var buf bytes.Buffer
	if err := Figure(&buf, fig, size); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Pie renders a pie figure. Slices with a zero value are skipped; a figure
// with nothing to draw renders the placeholder.
//
// go-chart writes text into the SVG verbatim, so every label is escaped
// here before it reaches the chart.
func Pie(w io.Writer, fig dashboard.Figure, size Size) error {
	if fig.Empty() {
		return Placeholder(w, fig.Title, size)
	}

	values := make([]chart.Value, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", html.EscapeString(s.Label), s.Value),
			Value: float64(s.Value),
			Style: chart.Style{
				FillColor:   hexColor(s.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontColor:   drawing.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Title:  html.EscapeString(fig.Title),
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}
	if err := pie.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

// Scatter renders a scatter figure with categorical y values mapped onto
// integer ticks in Categories order.
func Scatter(w io.Writer, fig dashboard.Figure, size Size) error {
	if fig.Empty() {
		return Placeholder(w, fig.Title, size)
	}

	categories := slices.Clone(fig.Categories)
	position := make(map[string]float64, len(categories))
	ticks := make([]chart.Tick, 0, len(categories))
	for i, c := range categories {
		position[c] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: html.EscapeString(c)})
	}

	xs := make([]float64, 0, len(fig.Points))
	ys := make([]float64, 0, len(fig.Points))
	for _, p := range fig.Points {
		y, ok := position[p.Y]
		if !ok {
			y = float64(len(categories))
			position[p.Y] = y
			categories = append(categories, p.Y)
			ticks = append(ticks, chart.Tick{Value: y, Label: html.EscapeString(p.Y)})
		}
		xs = append(xs, p.X)
		ys = append(ys, y)
	}

	minX, maxX := xs[0], xs[0]
	for _, x := range xs[1:] {
		minX = min(minX, x)
		maxX = max(maxX, x)
	}
	pad := (maxX - minX) * 0.05
	if pad == 0 {
		pad = 1
	}

	color := dashboard.PointColor
	if len(fig.Palette) > 0 {
		color = fig.Palette[0]
	}

	graph := chart.Chart{
		Title:  html.EscapeString(fig.Title),
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  html.EscapeString(fig.XAxisTitle),
			Range: &chart.ContinuousRange{Min: minX - pad, Max: maxX + pad},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  html.EscapeString(fig.YAxisTitle),
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(categories)) - 0.5},
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: html.EscapeString(fig.YAxisTitle),
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
					DotColor:    hexColor(color),
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("failed to render scatter chart: %w", err)
	}
	return nil
}

// Placeholder writes a minimal SVG stating there is no data.
func Placeholder(w io.Writer, title string, size Size) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" role="img">`, size.Width, size.Height)
	if title != "" {
		fmt.Fprintf(&b, `<text x="50%%" y="24" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`, html.EscapeString(title))
	}
	b.WriteString(`<text x="50%" y="50%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888">No data</text>`)
	b.WriteString(`</svg>`)
	_, err := io.WriteString(w, b.String())
	return err
}

func hexColor(s string) drawing.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 3 {
		return drawing.ColorFromHex(strings.TrimPrefix(dashboard.PointColor, "#"))
	}
	return drawing.ColorFromHex(s)
}
