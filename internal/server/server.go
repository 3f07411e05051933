// Package server exposes the card pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                         liveness and build info
//	GET  /v1/styles                       registered styles
//	GET  /v1/styles/{key}                 one style
//	GET  /v1/cards/{style}?title=&format= rendered card bytes
//	POST /v1/cards/match                  render the card requested in post text
//
// Card responses carry the alt text in X-Alt-Text and the cache outcome in
// X-Cache. Errors are JSON objects with a code and a message.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/titlecard/pkg/pipeline"
	"github.com/matzehuels/titlecard/pkg/trigger"
)

const (
	// requestTimeout bounds a single request, rendering included.
	requestTimeout = 30 * time.Second

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 10 * time.Second

	// maxBodyBytes bounds POST bodies.
	maxBodyBytes = 64 << 10
)

// Server serves title cards.
type Server struct {
	runner  *pipeline.Runner
	matcher *trigger.Matcher
	logger  *log.Logger
	router  chi.Router
}

// New creates a server around runner. A nil matcher uses the default
// trigger pattern.
func New(runner *pipeline.Runner, matcher *trigger.Matcher, logger *log.Logger) *Server {
	if matcher == nil {
		matcher = trigger.Default()
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:  runner,
		matcher: matcher,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/styles", s.handleStyles)
		r.Get("/styles/{key}", s.handleStyle)
		r.Get("/cards/{style}", s.handleCard)
		r.Post("/cards/match", s.handleMatch)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
