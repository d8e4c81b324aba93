package dashboard

import (
	"encoding/json"
	"strconv"
)

// DatastarScript is the client runtime loaded by the page.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Element ids patched by the SSE endpoints.
const (
	IDDashboard   = "dashboard"
	IDSite        = "in_site"
	IDPie         = "success-pie-chart"
	IDPayload     = "in_payload"
	IDPayloadText = "out_payload"
	IDScatter     = "out_payload_chart"
)

// PayloadLabel captions the payload slider.
const PayloadLabel = "Payload range (Kg):"

const (
	payloadLowID   = "in_payload_low"
	payloadHighID  = "in_payload_high"
	payloadStepKg  = "1"
	reloadEndpoint = "/reload"
)

// signalsJSON seeds the page's data-signals attribute.
func signalsJSON(s Signals) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
