// Package http provides the HTTP server and transport layer.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/assureops/api/internal/config"
	"github.com/assureops/api/internal/infra/http/middleware"
	"github.com/assureops/api/pkg/logger"
)

// Server wraps the HTTP server with graceful shutdown support.
type Server struct {
	httpServer   *http.Server
	router       chi.Router
	config       *config.Config
	logger       *logger.Logger
	cleanupFuncs []func()
}

// NewServer creates a new HTTP server with the standard middleware chain.
func NewServer(cfg *config.Config, log *logger.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		router: router,
		config: cfg,
		logger: log,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	rateLimitMw, stopRateLimit := middleware.RateLimitWithStop(&cfg.RateLimit, log)
	s.cleanupFuncs = append(s.cleanupFuncs, stopRateLimit)

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.BodyLimit(cfg.Server.MaxBodySize))
	router.Use(rateLimitMw)
	router.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger(log))

	return s
}

// Router returns the chi router for route registration.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server and runs cleanup functions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")

	err := s.httpServer.Shutdown(ctx)

	for _, cleanup := range s.cleanupFuncs {
		cleanup()
	}

	return err
}
