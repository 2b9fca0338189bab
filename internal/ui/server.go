// Package ui serves the ui-api consumed by the dashboard frontend. It is
// a thin HTTP surface over the command façade; all container state lives
// on the Proxmox node.
package ui

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pvedash/pvedash/internal/commands"
	"github.com/pvedash/pvedash/internal/config"
	"github.com/pvedash/pvedash/internal/logger"
)

const (
	// ServerShutdownTimeout is the timeout for graceful server shutdown
	ServerShutdownTimeout = 10 * time.Second

	requestTimeout = 60 * time.Second
)

type Server struct {
	router   *chi.Mux
	config   *config.Config
	logger   *zerolog.Logger
	handlers *HandlerService
}

func NewServer(cfg *config.Config, cmds *commands.Commands, serverLogger *zerolog.Logger, httpLogger *zerolog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   serverLogger,
		handlers: &HandlerService{Commands: cmds},
	}

	s.setupMiddleware(httpLogger)
	s.setupRoutes()
	return s
}

// Router returns the server's router, used by the handler tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) setupMiddleware(httpLogger *zerolog.Logger) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(requestTimeout))
	s.router.Use(logger.LoggingMiddleware(httpLogger))
	s.router.Use(SecurityHeaders(s.config.Environment))
	s.router.Use(CORS(strings.Split(s.config.AllowedOrigins, ",")))
	s.router.Use(RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.router.Route("/ui-api", func(r chi.Router) {
		r.Get("/config", s.handlers.HandleGetConfig)
		r.Get("/containers", s.handlers.HandleGetContainers)
		r.Post("/containers/{vmid}/start", s.handlers.HandleStartContainer)
		r.Post("/containers/{vmid}/stop", s.handlers.HandleStopContainer)
		r.Delete("/containers/{vmid}", s.handlers.HandleDeleteContainer)
	})
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().Msgf("dashboard server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down dashboard server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
	}

	return nil
}
