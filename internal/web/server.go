// Package web exposes the screener over a small JSON API.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"solarfx/internal/config"
	"solarfx/internal/provider"
)

// Server represents the web server
type Server struct {
	config   *config.Config
	provider provider.Provider
	srv      *http.Server
	logger   zerolog.Logger
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, p provider.Provider) *Server {
	return &Server{
		config:   cfg,
		provider: p,
		logger:   log.With().Str("component", "web").Logger(),
	}
}

// Start starts the web server on the configured port and blocks until it
// stops
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/pairs", s.handlePairs)
	mux.HandleFunc("/api/scan", s.handleScan)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Web.Port),
		Handler:      corsMiddleware(s.loggingMiddleware(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute, // scans block the response
	}

	s.logger.Info().Int("port", s.config.Web.Port).Msg("Starting web server")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// corsMiddleware allows cross-origin requests from dashboard frontends
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request")
	})
}
