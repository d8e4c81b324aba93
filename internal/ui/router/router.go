// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
	dashboardFeature "github.com/leapstack-labs/launchdash/internal/ui/features/dashboard"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
	"github.com/leapstack-labs/launchdash/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	store *dash.Store,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	page dashboardFeature.PageConfig,
	isDev bool,
) error {
	// Browser reload endpoints for debug mode
	if isDev {
		setupReload(router)
	}

	router.Handle("/static/*", resources.Handler())

	return dashboardFeature.SetupRoutes(router, store, sessionStore, notify, page, isDev)
}

// setupReload registers /reload, a stream that reloads the page once per
// server start and again on every /hotreload ping.
func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
