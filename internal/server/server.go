package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/boramlab/vlens/internal/service/analysis"
	"github.com/boramlab/vlens/internal/storage"
)

// Server is the vlens HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	handlers   *Handlers
	logger     *slog.Logger
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServerConfig holds all dependencies and configuration for creating a Server.
type ServerConfig struct {
	Store   storage.Store
	Service *analysis.Service
	Logger  *slog.Logger

	Port                int
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	Version             string
	MaxRequestBodyBytes int64
	ReportVideoLimit    int
}

// New creates a new HTTP server with all routes configured.
func New(cfg ServerConfig) *Server {
	h := NewHandlers(HandlersDeps{
		Store:               cfg.Store,
		Service:             cfg.Service,
		Logger:              cfg.Logger,
		Version:             cfg.Version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
		ReportVideoLimit:    cfg.ReportVideoLimit,
	})

	mux := http.NewServeMux()

	// Ingestion.
	mux.HandleFunc("POST /v1/videos", h.HandleUpsertVideo)
	mux.HandleFunc("POST /v1/videos/{video_id}/snapshots", h.HandleIngestSnapshots)

	// Per-video analysis.
	mux.HandleFunc("GET /v1/videos/{video_id}/analysis", h.HandleVideoAnalysis)
	mux.HandleFunc("GET /v1/videos/{video_id}/entities", h.HandleVideoEntities)

	// Aggregate reports.
	mux.HandleFunc("GET /v1/reports/trends", h.HandleTrendReport)
	mux.HandleFunc("GET /v1/reports/predictions", h.HandlePredictionReport)
	mux.HandleFunc("GET /v1/reports/nlp", h.HandleNLPReport)

	// Health (no middleware exemptions needed, endpoint is cheap).
	mux.HandleFunc("GET /health", h.HandleHealth)

	// Middleware chain (outermost executes first):
	// request ID → tracing → logging → recovery → handler.
	var handler http.Handler = mux
	handler = recoveryMiddleware(cfg.Logger, handler)
	handler = loggingMiddleware(cfg.Logger, handler)
	handler = tracingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler:  handler,
		handlers: h,
		logger:   cfg.Logger,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
