package dashboard

// Palette is an ordered list of hex colors.
type Palette []string

// Aggrnyl is the sequential teal-to-yellow palette used for pie slices.
var Aggrnyl = Palette{
	"#245668",
	"#0f7279",
	"#0d8f81",
	"#39ab7e",
	"#6ec574",
	"#a9dc67",
	"#edef5d",
}

// PointColor is the marker color of the scatter chart.
const PointColor = "#636efa"

// At returns the color for index i, cycling through the palette.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return PointColor
	}
	return p[i%len(p)]
}
