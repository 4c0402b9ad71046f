// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/footfit/internal/logging"
	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/pipeline"
)

// maxBodyBytes bounds a recommend request body
const maxBodyBytes = 64 << 10

// Runner runs one profile through the pipeline
type Runner interface {
	Run(ctx context.Context, profile model.Profile) (*pipeline.Result, error)
}

// Server serves the HTTP API
type Server struct {
	runner  Runner
	version string
	config  model.ServerConfig
}

// New creates a server around runner
func New(runner Runner, config model.ServerConfig, version string) *Server {
	return &Server{
		runner:  runner,
		version: version,
		config:  config,
	}
}

// Routes builds the chi router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/options", s.handleOptions)
		r.Post("/recommend", s.handleRecommend)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	log := logging.With("server")

	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Routes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.config.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
