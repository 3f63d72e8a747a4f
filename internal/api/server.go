// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/page"
	"github.com/taibuivan/pressroom/internal/platform/config"
	"github.com/taibuivan/pressroom/internal/platform/constants"
	"github.com/taibuivan/pressroom/internal/platform/middleware"
	"github.com/taibuivan/pressroom/internal/user"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New collections add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Dashboard is the GET /admin/dashboard summary handler.
	Dashboard http.HandlerFunc

	// Auth handles session routes (signin, signup, logout, me).
	Auth *auth.Handler

	// Page handles the Pages collection.
	Page *page.Handler

	// User handles the Users collection.
	User *user.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// # Routing Layout
//
// Everything the admin SPA talks to lives under /admin. The gate classifies
// each request (public-only, root, protected) before any handler runs; the
// session resolver then attaches the account for the authenticated subtree.
func NewServer(appContext context.Context, cfg *config.Config, log *slog.Logger, sessions *auth.SessionManager, authService *auth.Service, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(appContext))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Admin Surface
	r.Route(constants.AdminBasePath, func(admin chi.Router) {
		admin.Use(middleware.AdminGate(sessions))
		admin.Use(middleware.Authenticate(sessions, authService))

		// Session endpoints: signin/signup are reachable anonymously (the
		// gate allows public-only routes), logout/me require nothing extra.
		admin.Mount("/", h.Auth.Routes())

		// Authenticated subtree.
		admin.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)

			protected.Get("/dashboard", h.Dashboard)

			protected.Route("/collections", func(collections chi.Router) {
				collections.Mount("/pages", h.Page.Routes())
				collections.Mount("/users", h.User.Routes())
			})
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	shutdownContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownContext)
}
