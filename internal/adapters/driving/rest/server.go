package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second

	// multipartOverhead is allowed on top of the upload limit for form fields
	// and part headers.
	multipartOverhead = 1 << 20
)

// Config holds the HTTP-facing settings of the server.
type Config struct {
	// APIKeyConfigured is reported by the health endpoint.
	APIKeyConfigured bool

	// MaxUploadSize bounds the accepted multipart body.
	MaxUploadSize int64

	// RateLimit is the sustained requests per second allowed per client.
	// Zero or negative disables rate limiting.
	RateLimit float64

	// RateBurst is the per-client burst size.
	RateBurst int
}

// ConfigFromSettings derives the server config from application settings.
func ConfigFromSettings(s domain.Settings) Config {
	return Config{
		APIKeyConfigured: s.HasAPIKey(),
		MaxUploadSize:    s.MaxUploadSize,
		RateLimit:        s.RateLimit,
		RateBurst:        s.RateBurst,
	}
}

// Server serves the JSON API.
type Server struct {
	ports   *Ports
	cfg     Config
	handler http.Handler
}

// New creates a server for the given ports.
func New(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = domain.DefaultMaxUploadSize
	}

	s := &Server{ports: ports, cfg: cfg}

	mux := http.NewServeMux()
	s.routes(mux)

	var h http.Handler = mux
	if cfg.RateLimit > 0 {
		h = newClientLimiter(cfg.RateLimit, cfg.RateBurst).middleware(h)
	}
	h = recoverMiddleware(h)
	s.handler = logMiddleware(h)

	return s, nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on addr and serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(ln)
	}()

	logger.Info("http server listening", "addr", ln.Addr().String())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		logger.Info("http server stopped")
		return nil
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
