package dashboard

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
)

func renderComponent(t *testing.T, c templ.Component) string {
	t.Helper()

	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestPieChart_WritesSVGUnescaped(t *testing.T) {
	out := renderComponent(t, PieChart(`<svg width="10"><text>a &amp; b</text></svg>`))

	assert.Equal(t, `<div id="success-pie-chart" class="graph"><svg width="10"><text>a &amp; b</text></svg></div>`, out)
}

func TestScatterChart_WritesSVGUnescaped(t *testing.T) {
	out := renderComponent(t, ScatterChart(`<svg></svg>`))

	assert.Equal(t, `<div id="out_payload_chart" class="graph"><svg></svg></div>`, out)
}

func TestPayloadText_Escapes(t *testing.T) {
	out := renderComponent(t, PayloadText("<b>(1, 2)</b>"))

	assert.Equal(t, `<p id="out_payload">&lt;b&gt;(1, 2)&lt;/b&gt;</p>`, out)
}

func TestDashboard_EscapesSiteOptions(t *testing.T) {
	p := PageData{
		PageConfig: testPage,
		Options: []dash.SiteOption{
			{Label: "All", Value: "All"},
			{Label: `<i>Pad</i>`, Value: `a"b&c`},
		},
		Signals:    Signals{Site: `a"b&c`, PayloadLow: 10, PayloadHigh: 2500.5},
		MinPayload: 0,
		MaxPayload: 9600,
	}

	out := renderComponent(t, Dashboard(p))

	assert.Contains(t, out, `<option value="All">All</option>`)
	assert.Contains(t, out, `<option value="a&#34;b&amp;c" selected>&lt;i&gt;Pad&lt;/i&gt;</option>`)
	assert.Contains(t, out, `id="in_payload_low" type="range" min="0" max="9600" step="1" value="10" data-bind="payloadLow"`)
	assert.Contains(t, out, `id="in_payload_high" type="range" min="0" max="9600" step="1" value="2500.5" data-bind="payloadHigh"`)
	assert.Contains(t, out, `<div class="bounds"><span>0</span> <span>9600</span></div>`)
	assert.NotContains(t, out, "<i>")
}

func TestPage_SignalsAttributeIsEscaped(t *testing.T) {
	p := PageData{
		PageConfig: testPage,
		Signals:    Signals{Site: `"><script>`, PayloadHigh: 1},
	}

	out := renderComponent(t, Page(p))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `data-signals="{&#34;site&#34;:&#34;\&#34;\u003e\u003cscript\u003e&#34;,`)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "@get('/reload'")
}
