package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/render"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
)

// Session cookie name and keys for the remembered control values.
const (
	SessionName = "launchdash"

	keySite        = "site"
	keyPayloadLow  = "payloadLow"
	keyPayloadHigh = "payloadHigh"
)

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	store        *dash.Store
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	page         PageConfig
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *dash.Store, sessionStore sessions.Store, notify *notifier.Notifier, page PageConfig, isDev bool) *Handlers {
	return &Handlers{
		store:        store,
		sessionStore: sessionStore,
		notifier:     notify,
		page:         page,
		isDev:        isDev,
	}
}

// HandlePage renders the full page with both charts server-rendered for
// the control values remembered in the session.
func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	d := h.store.Load()

	page, err := h.buildPage(d, h.restoreSignals(r, d))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Page(page).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleSite recomputes the pie for the selected site.
func (h *Handlers) HandleSite(w http.ResponseWriter, r *http.Request) {
	d := h.store.Load()

	// Read signals BEFORE creating SSE (SSE consumes the request body)
	site := dash.AllSites
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err == nil && signals.Site != "" {
		site = signals.Site
	}

	if d.IsValidSite(site) {
		h.saveSession(w, r, map[string]any{keySite: site})
	}

	sse := datastar.NewSSE(w, r)

	svg, err := render.SVG(dash.SuccessPie(d, site), render.PieSize)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(PieChart(svg)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// HandlePayload recomputes the range echo and the scatter for the slider
// selection. Unreadable signals fall back to the full payload range.
func (h *Handlers) HandlePayload(w http.ResponseWriter, r *http.Request) {
	d := h.store.Load()

	rng := d.FullRange()
	var signals payloadSignals
	if err := datastar.ReadSignals(r, &signals); err == nil && signals.PayloadLow != nil && signals.PayloadHigh != nil {
		rng = dash.PayloadRange{Low: float64(*signals.PayloadLow), High: float64(*signals.PayloadHigh)}
		h.saveSession(w, r, map[string]any{keyPayloadLow: rng.Low, keyPayloadHigh: rng.High})
	}

	sse := datastar.NewSSE(w, r)

	text, fig := dash.PayloadScatter(d, rng)
	svg, err := render.SVG(fig, render.ScatterSize)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(PayloadText(text)); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(ScatterChart(svg)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// HandleUpdates is the long-lived SSE endpoint. When the dataset is
// reloaded it pushes the rebuilt dashboard and resets the signals to the
// new defaults. Nothing is sent on connect; the page is already rendered.
func (h *Handlers) HandleUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendDashboard(sse); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func (h *Handlers) sendDashboard(sse *datastar.ServerSentEventGenerator) error {
	d := h.store.Load()
	page, err := h.buildPage(d, defaultSignals(d))
	if err != nil {
		return err
	}
	if err := sse.MarshalAndPatchSignals(page.Signals); err != nil {
		return err
	}
	return sse.PatchElementTempl(Dashboard(page))
}

// HandleOptions serves the dropdown options and payload bounds as JSON.
func (h *Handlers) HandleOptions(w http.ResponseWriter, _ *http.Request) {
	d := h.store.Load()
	writeJSON(w, http.StatusOK, OptionsResponse{
		Options:    d.Options,
		MinPayload: d.Dataset.MinPayload,
		MaxPayload: d.Dataset.MaxPayload,
	})
}

// HandlePieFigure serves the pie description for ?site= (default All).
func (h *Handlers) HandlePieFigure(w http.ResponseWriter, r *http.Request) {
	site := r.URL.Query().Get("site")
	if site == "" {
		site = dash.AllSites
	}
	writeJSON(w, http.StatusOK, dash.SuccessPie(h.store.Load(), site))
}

// HandlePayloadFigure serves the scatter description for ?low=&high=.
// Missing bounds default to the dataset bounds.
func (h *Handlers) HandlePayloadFigure(w http.ResponseWriter, r *http.Request) {
	d := h.store.Load()
	rng := d.FullRange()

	q := r.URL.Query()
	var err error
	if rng.Low, err = queryFloat(q.Get("low"), rng.Low); err != nil {
		http.Error(w, "low: "+err.Error(), http.StatusBadRequest)
		return
	}
	if rng.High, err = queryFloat(q.Get("high"), rng.High); err != nil {
		http.Error(w, "high: "+err.Error(), http.StatusBadRequest)
		return
	}

	text, fig := dash.PayloadScatter(d, rng)
	writeJSON(w, http.StatusOK, PayloadResponse{Range: text, Figure: fig})
}

// buildPage renders both charts for the given control values.
func (h *Handlers) buildPage(d *dash.Data, signals Signals) (PageData, error) {
	page := PageData{
		PageConfig: h.page,
		IsDev:      h.isDev,
		Options:    d.Options,
		Signals:    signals,
		MinPayload: d.Dataset.MinPayload,
		MaxPayload: d.Dataset.MaxPayload,
	}

	var err error
	page.PieSVG, err = render.SVG(dash.SuccessPie(d, signals.Site), render.PieSize)
	if err != nil {
		return page, fmt.Errorf("failed to render pie chart: %w", err)
	}

	var fig dash.Figure
	page.RangeText, fig = dash.PayloadScatter(d, signals.Range())
	page.ScatterSVG, err = render.SVG(fig, render.ScatterSize)
	if err != nil {
		return page, fmt.Errorf("failed to render scatter chart: %w", err)
	}

	return page, nil
}

func defaultSignals(d *dash.Data) Signals {
	full := d.FullRange()
	return Signals{
		Site:        dash.AllSites,
		PayloadLow:  Float(full.Low),
		PayloadHigh: Float(full.High),
	}
}

// restoreSignals returns the remembered control values, dropping a site
// that no longer exists and clamping the range into the current bounds.
func (h *Handlers) restoreSignals(r *http.Request, d *dash.Data) Signals {
	signals := defaultSignals(d)

	session, err := h.sessionStore.Get(r, SessionName)
	if err != nil {
		return signals
	}

	if site, ok := session.Values[keySite].(string); ok && d.IsValidSite(site) {
		signals.Site = site
	}

	low, okLow := session.Values[keyPayloadLow].(float64)
	high, okHigh := session.Values[keyPayloadHigh].(float64)
	if okLow && okHigh {
		rng := dash.PayloadRange{Low: low, High: high}.Clamp(d.Dataset.MinPayload, d.Dataset.MaxPayload)
		signals.PayloadLow = Float(rng.Low)
		signals.PayloadHigh = Float(rng.High)
	}

	return signals
}

// saveSession stores values in the session cookie. It must run before the
// SSE response writes its headers. Failures only cost the memory of the
// last selection, so they are ignored.
func (h *Handlers) saveSession(w http.ResponseWriter, r *http.Request, values map[string]any) {
	session, err := h.sessionStore.Get(r, SessionName)
	if err != nil && session == nil {
		return
	}
	for k, v := range values {
		session.Values[k] = v
	}
	_ = session.Save(r, w)
}

func queryFloat(s string, fallback float64) (float64, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
