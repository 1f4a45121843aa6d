// Package server exposes completed analysis results over HTTP: JSON
// endpoints for functions, modules, and the system overview, plus a
// WebSocket feed that announces finished reanalysis runs.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"flowlens/internal/analyzer"
	"flowlens/internal/config"
)

// Server serves analysis results and triggers reanalysis runs.
type Server struct {
	cfg      *config.Config
	pipeline *analyzer.Pipeline
	logger   *log.Logger

	mu     sync.RWMutex
	result *analyzer.Result

	analyzing atomic.Bool
	hub       *hub

	router     chi.Router
	httpServer *http.Server
}

// New creates a Server around an analysis pipeline. A nil logger
// disables logging.
func New(cfg *config.Config, pipeline *analyzer.Pipeline, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		logger:   logger,
		hub:      newHub(logger),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.Server.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/functions", s.handleFunctions)
		r.Get("/functions/{name}", s.handleFunction)
		r.Get("/functions/{name}/graph", s.handleFunctionGraph)
		r.Get("/modules", s.handleModules)
		r.Get("/dependencies/graph", s.handleDependencyGraph)
		r.Post("/reanalyze", s.handleReanalyze)
	})

	r.Get("/ws", s.handleWebSocket)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// SetResult swaps in a completed analysis snapshot and announces it to
// every connected WebSocket client.
func (s *Server) SetResult(result *analyzer.Result) {
	s.mu.Lock()
	s.result = result
	s.mu.Unlock()

	s.hub.broadcast(analysisEvent{
		Event:  "analysis_complete",
		RunID:  result.RunID,
		Counts: result.Counts(),
	})
}

// snapshot returns the current result, which may be nil before the
// first analysis completes.
func (s *Server) snapshot() *analyzer.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("flowlens server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
