package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
)

// Options configures the HTTP server.
type Options struct {
	Port       int
	CORSOrigin string
	Version    string
}

// Server serves the classification API and its OpenAPI documentation.
type Server struct {
	httpServer *http.Server
}

// NewServer registers all handlers on a new huma API.
func NewServer(opts Options, predictor Predictor, artifacts ArtifactLister) *Server {
	mux := http.NewServeMux()

	cfg := huma.DefaultConfig("SMS Spam Detection Model Service", opts.Version)
	cfg.Info.Description = "Classifies SMS messages as spam or ham."
	api := humago.New(mux, cfg)

	NewHealthHandler(api, opts.Port, opts.Version)
	NewPredictHandler(api, predictor)
	NewModelsHandler(api, artifacts)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           CORS{AllowOrigin: opts.CORSOrigin}.Wrap(logRequests(mux)),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Handler returns the root HTTP handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	slog.Info("HTTP server listening", "addr", l.Addr().String())

	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
