// Package dashboard provides the launch dashboard page and its reactive
// endpoints.
package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
)

// Signals is the client-side state of the dashboard controls.
type Signals struct {
	Site        string `json:"site"`
	PayloadLow  Float  `json:"payloadLow"`
	PayloadHigh Float  `json:"payloadHigh"`
}

// Range returns the slider selection.
func (s Signals) Range() dash.PayloadRange {
	return dash.PayloadRange{Low: float64(s.PayloadLow), High: float64(s.PayloadHigh)}
}

// payloadSignals is the subset of Signals read by the slider endpoint.
// Nil fields mean the client did not send them.
type payloadSignals struct {
	PayloadLow  *Float `json:"payloadLow"`
	PayloadHigh *Float `json:"payloadHigh"`
}

// Float decodes from a JSON number or a numeric string. Range inputs
// bound to a signal may report their value either way.
type Float float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", b, err)
	}
	*f = Float(v)
	return nil
}

// PageConfig holds the static page text.
type PageConfig struct {
	Title     string
	PageTitle string
}

// PageData is everything the page template needs.
type PageData struct {
	PageConfig
	IsDev bool

	Options    []dash.SiteOption
	Signals    Signals
	MinPayload float64
	MaxPayload float64

	RangeText  string
	PieSVG     string
	ScatterSVG string
}

// OptionsResponse is the body of GET /api/options.
type OptionsResponse struct {
	Options    []dash.SiteOption `json:"options"`
	MinPayload float64           `json:"minPayload"`
	MaxPayload float64           `json:"maxPayload"`
}

// PayloadResponse is the body of GET /api/figures/payload.
type PayloadResponse struct {
	Range  string      `json:"range"`
	Figure dash.Figure `json:"figure"`
}
