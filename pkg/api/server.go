package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/internal/metrics"
	"github.com/credora/indexer/pkg/api/docs"
	"github.com/credora/indexer/pkg/config"
	"github.com/credora/indexer/pkg/query"
)

// Ensure docs are initialized
var _ = docs.SwaggerInfo

const shutdownCtxTimeout = 10 * time.Second

// Server represents the API HTTP server.
type Server struct {
	config  *config.APIConfig
	handler *Handler
	server  *http.Server
	log     *logger.Logger

	mu   sync.Mutex
	addr net.Addr
}

// NewServer creates a new API server.
func NewServer(cfg *config.APIConfig, reader query.Reader, log *logger.Logger) *Server {
	handler := NewHandler(reader, cfg.MaxPageSize, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)

	mux.HandleFunc("GET /api/v1/users/{address}", handler.GetUser)
	mux.HandleFunc("GET /api/v1/users/{address}/score-updates", handler.GetScoreUpdates)
	mux.HandleFunc("GET /api/v1/users/{address}/permissions", handler.GetActivePermissions)
	mux.HandleFunc("GET /api/v1/scores/{tokenId}", handler.GetCreditScore)
	mux.HandleFunc("GET /api/v1/permissions/{owner}/{protocol}", handler.GetPermission)
	mux.HandleFunc("GET /api/v1/protocols/{address}", handler.GetProtocolStats)
	mux.HandleFunc("GET /api/v1/oracles/{address}", handler.GetOracle)
	mux.HandleFunc("GET /api/v1/requests/{requestId}", handler.GetScoreRequest)
	mux.HandleFunc("GET /api/v1/daily-stats/{day}", handler.GetDailyStats)
	mux.HandleFunc("GET /api/v1/daily-stats", handler.ListDailyStats)

	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	// Outermost first: recovery, request id, access log, CORS, rate limit
	var h http.Handler = mux
	if cfg.RateLimit != nil {
		h = RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)(h)
	}
	if cfg.CORS != nil && len(cfg.CORS.AllowedOrigins) > 0 {
		h = CORSMiddleware(cfg.CORS.AllowedOrigins)(h)
	}
	h = LoggingMiddleware(log)(h)
	h = RequestIDMiddleware()(h)
	h = RecoveryMiddleware(log)(h)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  cfg.IdleTimeout.Duration,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
		log:     log,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the address the server listens on, or nil before it started.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Start serves the API until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API server is disabled")
		return nil
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		metrics.ComponentHealthSet("api", false)
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.mu.Lock()
	s.addr = listener.Addr()
	s.mu.Unlock()

	s.log.Infof("Starting API server on %s", listener.Addr())
	metrics.ComponentHealthSet("api", true)

	serveErr := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			metrics.ComponentHealthSet("api", false)
			return fmt.Errorf("API server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownCtxTimeout)
	defer cancel()

	s.log.Info("Shutting down API server...")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}
	metrics.ComponentHealthSet("api", false)

	s.log.Info("API server stopped")
	return nil
}
