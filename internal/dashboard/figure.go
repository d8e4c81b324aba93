package dashboard

// Kind identifies the chart type of a Figure.
type Kind string

// Chart kinds.
const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Figure is a declarative chart description. The render package turns it
// into SVG; the JSON API serves it as is.
type Figure struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title,omitempty"`

	XAxisTitle string `json:"xAxisTitle,omitempty"`
	YAxisTitle string `json:"yAxisTitle,omitempty"`

	// Slices is set for pie charts.
	Slices []Slice `json:"slices,omitempty"`

	// Points and Categories are set for scatter charts. Categories lists the
	// y axis labels bottom to top.
	Points     []Point  `json:"points,omitempty"`
	Categories []string `json:"categories,omitempty"`

	Palette Palette `json:"palette,omitempty"`
}

// Slice is one pie wedge.
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Point is one scatter marker.
type Point struct {
	X float64 `json:"x"`
	Y string  `json:"y"`
}

// Total returns the sum of slice values.
func (f Figure) Total() int {
	total := 0
	for _, s := range f.Slices {
		total += s.Value
	}
	return total
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool {
	switch f.Kind {
	case KindPie:
		return f.Total() == 0
	case KindScatter:
		return len(f.Points) == 0
	}
	return true
}
