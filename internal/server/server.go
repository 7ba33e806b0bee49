// Package server exposes portal sessions over HTTP: a shell page, the
// content files and one websocket-bridged runtime per connection.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hashportal/hashportal/internal/portal"
	"github.com/hashportal/hashportal/internal/router"
)

// DefaultTitle is the brand shown in the shell sidebar.
const DefaultTitle = "マビノギ ポータル"

// Config holds server configuration.
type Config struct {
	Port  int
	Title string
	// SiteDir is served under /data/*. Empty disables the content route,
	// e.g. when documents come from a remote base URL.
	SiteDir  string
	AllowAll bool // allow all CORS origins (dev mode)
	// Portal is the template for each session's runtime; ID is assigned
	// per connection.
	Portal portal.Options
}

// Server serves the portal shell and its sessions.
type Server struct {
	cfg        Config
	nav        []router.NavItem
	shell      []byte
	router     chi.Router
	httpServer *http.Server
	sessions   *sessionSet
}

// New builds the server. It constructs one throwaway runtime to validate
// the portal options and to learn the navigation items.
func New(cfg Config) (*Server, error) {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	probe, err := portal.New(cfg.Portal, discard{})
	if err != nil {
		return nil, fmt.Errorf("configuring portal: %w", err)
	}
	s := &Server{
		cfg:      cfg,
		nav:      probe.Nav(),
		sessions: newSessionSet(),
	}
	s.shell, err = renderShell(cfg.Title, s.nav)
	if err != nil {
		return nil, fmt.Errorf("rendering shell: %w", err)
	}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Websocket sessions outlive any request timeout.
	r.Get("/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get("/", s.serveShell)
		if s.cfg.SiteDir != "" {
			files := http.FileServer(http.Dir(s.cfg.SiteDir))
			r.Get("/data/*", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Cache-Control", "no-store")
				w.Header().Set("Pragma", "no-cache")
				files.ServeHTTP(w, r)
			})
		}
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Nav returns the navigation items rendered into the shell.
func (s *Server) Nav() []router.NavItem { return s.nav }

// Sessions reports the number of open websocket sessions.
func (s *Server) Sessions() int { return s.sessions.len() }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("hashportal server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and ends every open session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.closeAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
