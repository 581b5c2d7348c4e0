// Package api exposes documentation trees and site builds over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docmap/internal/config"
	"github.com/dgallion1/docmap/internal/doctree"
	"github.com/dgallion1/docmap/internal/inspect"
	"github.com/dgallion1/docmap/internal/pipeline"
	"github.com/dgallion1/docmap/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docmap.
type Server struct {
	router       chi.Router
	builder      *doctree.Builder
	loader       *inspect.Loader
	orchestrator *pipeline.Orchestrator
	conv         render.Converter
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(builder *doctree.Builder, loader *inspect.Loader, orch *pipeline.Orchestrator, conv render.Converter, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		builder:      builder,
		loader:       loader,
		orchestrator: orch,
		conv:         conv,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints. With no key configured the middleware
	// leaves them open.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocmapAPIKey, s.log))

		r.Get("/api/pages", s.handleListPages)
		r.Get("/api/symbols", s.handleListSymbols)
		r.Get("/api/symbols/{name}", s.handleSymbolTree)
		r.Get("/docs/{name}", s.handleDocsPage)

		r.Post("/api/builds", s.handleSubmitBuild)
		r.Get("/api/builds/{jobID}", s.handleBuildStatus)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
