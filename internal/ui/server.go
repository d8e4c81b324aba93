// Package ui serves the launch dashboard over HTTP.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/launch"
	dashboardFeature "github.com/leapstack-labs/launchdash/internal/ui/features/dashboard"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
	"github.com/leapstack-labs/launchdash/internal/ui/router"
)

const (
	reloadDebounce  = 100 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// Server is the dashboard HTTP server.
type Server struct {
	store        *dash.Store
	loader       launch.Config
	dataOptions  []dash.Option
	sessionStore *sessions.CookieStore
	addr         string
	debug        bool
	page         dashboardFeature.PageConfig
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the dashboard server.
type Config struct {
	// Store holds the dataset snapshot served to every request.
	Store *dash.Store

	// Loader re-reads the data file when it changes in debug mode.
	Loader launch.Config

	// DataOptions are applied to every reloaded snapshot.
	DataOptions []dash.Option

	Addr          string
	Debug         bool
	SessionSecret string
	Title         string
	PageTitle     string
	Logger        *slog.Logger
}

// NewServer creates a new dashboard server. An empty session secret gets
// a random key, so remembered selections last for the life of the process.
func NewServer(cfg Config) *Server {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	sessionStore := sessions.NewCookieStore(secret)
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		store:        cfg.Store,
		loader:       cfg.Loader,
		dataOptions:  cfg.DataOptions,
		sessionStore: sessionStore,
		addr:         cfg.Addr,
		debug:        cfg.Debug,
		page:         dashboardFeature.PageConfig{Title: cfg.Title, PageTitle: cfg.PageTitle},
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Handler builds the router with middleware and all routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Heartbeat("/healthz"),
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.store, s.sessionStore, s.notifier, s.page, s.debug); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.serve(ctx, ln, handler)
}

func (s *Server) serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	s.logger.Info("dashboard server listening", "addr", ln.Addr().String(), "debug", s.debug)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.debug && s.loader.Path != "" {
		eg.Go(func() error {
			return s.watchData(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down dashboard server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether debug mode is on.
func (s *Server) IsDev() bool {
	return s.debug
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// Reload re-reads the data file and installs the new snapshot. On failure
// the current snapshot stays in place.
func (s *Server) Reload(ctx context.Context) error {
	ds, err := launch.Load(ctx, s.loader)
	if err != nil {
		return err
	}
	s.store.Swap(dash.NewData(ds, s.dataOptions...))
	gen := s.notifier.Broadcast()
	s.logger.Info("launch data reloaded",
		"path", ds.Source, "records", ds.Table.Len(), "sites", len(ds.Sites), "generation", gen)
	return nil
}

// watchData reloads the dataset whenever the data file is written. The
// parent directory is watched so editors that replace the file on save
// are picked up too.
func (s *Server) watchData(ctx context.Context) error {
	target, err := filepath.Abs(s.loader.Path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		s.logger.Error("failed to watch data directory", "path", filepath.Dir(target), "error", err)
		// Keep serving without live reload.
		<-ctx.Done()
		return nil
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				s.logger.Debug("data file changed, reloading", "file", event.Name)
				if err := s.Reload(ctx); err != nil {
					s.logger.Error("reload failed, keeping previous data", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}
