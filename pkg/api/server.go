package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/api/docs"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
)

const shutdownCtxTimeout = 10 * time.Second

// Server represents the API HTTP server.
type Server struct {
	config   *config.APIConfig
	registry NetworkRegistry
	handler  *Handler
	server   *http.Server
	log      *logger.Logger
}

// NewServer creates a new API server.
func NewServer(cfg *config.APIConfig, registry NetworkRegistry, log *logger.Logger) *Server {
	handler := NewHandler(registry, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /api/v1/networks", handler.ListNetworks)

	mux.HandleFunc("GET /api/v1/networks/{network}/swaps", handler.GetSwaps)
	mux.HandleFunc("GET /api/v1/networks/{network}/swaps/last", handler.GetLastSwaps)
	mux.HandleFunc("GET /api/v1/networks/{network}/swaps/history", handler.GetSwapHistory)
	mux.HandleFunc("GET /api/v1/networks/{network}/status", handler.GetStatus)

	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	var h http.Handler = mux
	h = RecoveryMiddleware(log)(h)
	h = LoggingMiddleware(log)(h)

	if cfg.CORS.Enabled {
		h = CORSMiddleware(cfg.CORS.AllowedOrigins)(h)
	}

	docs.SwaggerInfo.Host = swaggerHost(cfg.ListenAddress)

	return &Server{
		config:   cfg,
		registry: registry,
		handler:  handler,
		server: &http.Server{
			Addr:         cfg.ListenAddress,
			Handler:      h,
			ReadTimeout:  cfg.ReadTimeout.Duration,
			WriteTimeout: cfg.WriteTimeout.Duration,
			IdleTimeout:  cfg.IdleTimeout.Duration,
		},
		log: log,
	}
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves the API until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API server is disabled")
		return nil
	}

	s.log.Infof("Starting API server on %s", s.config.ListenAddress)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("API server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownCtxTimeout)
	defer cancel()

	s.log.Info("Shutting down API server...")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}

	s.log.Info("API server stopped")
	return nil
}

func swaggerHost(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
