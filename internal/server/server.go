// Package server exposes the recognition engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wbrown/glyphcheck"
)

const (
	defaultMaxUploadBytes = 4 << 20
	defaultMaxPixels      = 4096 * 4096
	shutdownTimeout       = 5 * time.Second
)

// Options configures a Server. MaxPixels caps the width x height an
// uploaded image may declare and is checked before decoding.
type Options struct {
	Library        *glyphcheck.Library
	Engine         *glyphcheck.Engine
	MaxUploadBytes int64
	MaxPixels      int64
	Logger         *slog.Logger
}

// Server answers analysis requests. The library and engine are shared by
// all requests and never modified after construction.
type Server struct {
	lib       *glyphcheck.Library
	engine    *glyphcheck.Engine
	maxUpload int64
	maxPixels int64
	logger    *slog.Logger
}

// New returns a server for the given library and engine.
func New(opts Options) *Server {
	s := &Server{
		lib:       opts.Library,
		engine:    opts.Engine,
		maxUpload: opts.MaxUploadBytes,
		maxPixels: opts.MaxPixels,
		logger:    opts.Logger,
	}
	if s.engine == nil {
		s.engine = glyphcheck.DefaultEngine()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = defaultMaxUploadBytes
	}
	if s.maxPixels <= 0 {
		s.maxPixels = defaultMaxPixels
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/templates", s.handleTemplates)
	r.Post("/analyze", s.handleAnalyze)

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("server listening", "addr", ln.Addr().String(), "templates", s.lib.Len())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
