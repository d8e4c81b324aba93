package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/dashboard"
)

func TestPie(t *testing.T) {
	fig := dashboard.Figure{
		Kind:  dashboard.KindPie,
		Title: "Success vs. Failed Launches for SiteA",
		Slices: []dashboard.Slice{
			{Label: "Fail", Value: 1, Color: "#245668"},
			{Label: "Success", Value: 3, Color: "#0f7279"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Pie(&buf, fig, PieSize))

	svg := buf.String()
	assert.True(t, strings.HasPrefix(svg, "<svg"), "output should be SVG")
	assert.Contains(t, svg, "Fail (1)")
	assert.Contains(t, svg, "Success (3)")
}

func TestPie_SingleSlice(t *testing.T) {
	fig := dashboard.Figure{
		Kind:   dashboard.KindPie,
		Slices: []dashboard.Slice{{Label: "KSC LC-39A", Value: 2, Color: "#245668"}},
	}

	svg, err := SVG(fig, PieSize)
	require.NoError(t, err)
	assert.Contains(t, svg, "KSC LC-39A (2)")
}

func TestPie_EmptyRendersPlaceholder(t *testing.T) {
	fig := dashboard.Figure{Kind: dashboard.KindPie, Title: "Nothing <here>"}

	svg, err := SVG(fig, PieSize)
	require.NoError(t, err)
	assert.Contains(t, svg, "No data")
	assert.Contains(t, svg, "Nothing &lt;here&gt;")
}

func TestPie_EscapesLabels(t *testing.T) {
	fig := dashboard.Figure{
		Kind:  dashboard.KindPie,
		Title: "Launches for <script>alert(1)</script>",
		Slices: []dashboard.Slice{
			{Label: "<script>alert(1)</script>", Value: 1, Color: "#245668"},
			{Label: "x&y", Value: 2, Color: "#0f7279"},
		},
	}

	svg, err := SVG(fig, PieSize)
	require.NoError(t, err)
	assert.NotContains(t, svg, "<script>")
	assert.NotContains(t, svg, "x&y")
	assert.Contains(t, svg, "&lt;script&gt;alert(1)&lt;/script&gt; (1)")
	assert.Contains(t, svg, "x&amp;y (2)")
}

func TestScatter(t *testing.T) {
	fig := dashboard.Figure{
		Kind:       dashboard.KindScatter,
		Title:      dashboard.ScatterTitle,
		XAxisTitle: dashboard.PayloadAxis,
		YAxisTitle: dashboard.OutcomeAxis,
		Categories: []string{dashboard.LabelNo, dashboard.LabelYes},
		Points: []dashboard.Point{
			{X: 500, Y: dashboard.LabelYes},
			{X: 1200, Y: dashboard.LabelNo},
			{X: 800, Y: dashboard.LabelYes},
		},
	}

	svg, err := SVG(fig, ScatterSize)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, dashboard.ScatterTitle)
	assert.Contains(t, svg, ">No<")
	assert.Contains(t, svg, ">Yes<")
}

func TestScatter_EscapesText(t *testing.T) {
	fig := dashboard.Figure{
		Kind:       dashboard.KindScatter,
		Title:      "Payload & <b>outcome</b>",
		XAxisTitle: "Mass <kg>",
		YAxisTitle: "R&D",
		Categories: []string{"<No>", "Yes"},
		Points:     []dashboard.Point{{X: 100, Y: "<No>"}, {X: 200, Y: "<img src=x>"}},
	}

	svg, err := SVG(fig, ScatterSize)
	require.NoError(t, err)
	for _, raw := range []string{"<b>", "<No>", "<kg>", "<img", "R&D", "Payload & "} {
		assert.NotContains(t, svg, raw)
	}
	assert.Contains(t, svg, "&lt;No&gt;")
	assert.Contains(t, svg, "&lt;img src=x&gt;")
}

func TestScatter_SinglePoint(t *testing.T) {
	fig := dashboard.Figure{
		Kind:       dashboard.KindScatter,
		Categories: []string{dashboard.LabelNo, dashboard.LabelYes},
		Points:     []dashboard.Point{{X: 0, Y: dashboard.LabelNo}},
	}

	_, err := SVG(fig, ScatterSize)
	require.NoError(t, err)
}

func TestScatter_DoesNotMutateCategories(t *testing.T) {
	categories := make([]string, 2, 4)
	copy(categories, []string{"No", "Yes"})
	fig := dashboard.Figure{
		Kind:       dashboard.KindScatter,
		Categories: categories,
		Points:     []dashboard.Point{{X: 1, Y: "Maybe"}, {X: 2, Y: "No"}},
	}

	_, err := SVG(fig, ScatterSize)
	require.NoError(t, err)
	assert.Equal(t, []string{"No", "Yes"}, fig.Categories)
	assert.Equal(t, "No", categories[:3][0])
	assert.Empty(t, categories[:3][2], "backing array must be untouched")
}

func TestScatter_EmptyRendersPlaceholder(t *testing.T) {
	fig := dashboard.Figure{Kind: dashboard.KindScatter, Title: dashboard.ScatterTitle}

	svg, err := SVG(fig, ScatterSize)
	require.NoError(t, err)
	assert.Contains(t, svg, "No data")
	assert.Contains(t, svg, dashboard.ScatterTitle)
}

func TestFigure_UnknownKind(t *testing.T) {
	_, err := SVG(dashboard.Figure{Kind: "bar"}, PieSize)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported figure kind")
}

func TestHexColor(t *testing.T) {
	c := hexColor("#245668")
	assert.Equal(t, uint8(0x24), c.R)
	assert.Equal(t, uint8(0x56), c.G)
	assert.Equal(t, uint8(0x68), c.B)

	fallback := hexColor("not-a-color")
	assert.Equal(t, hexColor(dashboard.PointColor), fallback)
}
