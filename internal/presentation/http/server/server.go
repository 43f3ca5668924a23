// Package server provides HTTP server initialization and management.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/AtRiskMedia/monster-widget/internal/application/container"
	"github.com/AtRiskMedia/monster-widget/internal/presentation/http/routes"
	"github.com/AtRiskMedia/monster-widget/pkg/config"
)

// Server wraps the HTTP server with its container.
type Server struct {
	httpServer *http.Server
	container  *container.Container
}

// New creates the HTTP server listening on port.
func New(port string, container *container.Container) *Server {
	router := routes.SetupRoutes(container)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	return &Server{
		httpServer: httpServer,
		container:  container,
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving requests until Stop is called.
func (s *Server) Start() error {
	s.container.Logger.HTTP().Info("HTTP server listening", "address", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.container.Logger.HTTP().Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
