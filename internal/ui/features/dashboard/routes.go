package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(
	router chi.Router,
	store *dash.Store,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	page PageConfig,
	isDev bool,
) error {
	handlers := NewHandlers(store, sessionStore, notify, page, isDev)

	router.Get("/", handlers.HandlePage)
	router.Get("/site", handlers.HandleSite)
	router.Get("/payload", handlers.HandlePayload)
	router.Get("/updates", handlers.HandleUpdates)

	router.Route("/api", func(r chi.Router) {
		r.Get("/options", handlers.HandleOptions)
		r.Get("/figures/pie", handlers.HandlePieFigure)
		r.Get("/figures/payload", handlers.HandlePayloadFigure)
	})

	return nil
}
