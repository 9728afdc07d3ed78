// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the catalog
views into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/web are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
	"github.com/taibuivan/bgpiesa/internal/platform/config"
	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/platform/metrics"
	"github.com/taibuivan/bgpiesa/internal/platform/middleware"
	"github.com/taibuivan/bgpiesa/internal/platform/respond"
	"github.com/taibuivan/bgpiesa/internal/session"
	"github.com/taibuivan/bgpiesa/internal/views"
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

// Handlers groups the HTTP handler sets served by the web front.
type Handlers struct {
	// Liveness is the /health handler and returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler and returns 200 when Redis and the backend answer.
	Readiness http.HandlerFunc

	// Views serves the localized catalog and the admin relay.
	Views *views.Handler

	// Sessions resolves admin session cookies.
	Sessions session.Store

	// Metrics records served requests and exposes /metrics.
	Metrics *metrics.Metrics
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(h.Metrics.Middleware())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Language(cfg.Language()))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())

	// # Application API
	// Registered before Mount so the views router inherits it.
	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})
	r.Mount("/api/v1", h.Views.Routes(middleware.RequireAdmin(h.Sessions, time.Now)))

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

// Handler returns the root router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
