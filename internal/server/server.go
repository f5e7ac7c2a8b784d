// Package server serves the documentation center over HTTP: the endpoint
// catalog, the generated downloads, the API explorer and a Swagger UI.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/rs/zerolog"

	"github.com/veeq-ai/docs-gen/pkg/catalog"
	"github.com/veeq-ai/docs-gen/pkg/config"
	"github.com/veeq-ai/docs-gen/pkg/explorer"
	"github.com/veeq-ai/docs-gen/pkg/generator"
	"github.com/veeq-ai/docs-gen/pkg/logging"
)

// Server represents the HTTP server
type Server struct {
	config    *config.ServerConfig
	endpoints []catalog.Endpoint
	downloads *Downloads
	executor  explorer.Executor
	logger    zerolog.Logger

	mux     *http.ServeMux
	humaAPI huma.API
	server  *http.Server
}

// Option customizes a Server
type Option func(*Server)

// WithExecutor replaces the explorer's mock executor
func WithExecutor(e explorer.Executor) Option {
	return func(s *Server) { s.executor = e }
}

// WithLogger sets the request logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithEndpoints serves endpoints instead of the configured catalog
func WithEndpoints(endpoints []catalog.Endpoint) Option {
	return func(s *Server) { s.endpoints = endpoints }
}

// New creates the server and renders every download up front
func New(cfg *config.ServerConfig, opts ...Option) (*Server, error) {
	s := &Server{
		config: cfg,
		logger: *logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.endpoints == nil {
		endpoints, err := generator.LoadCatalog(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		s.endpoints = endpoints
	}
	if s.executor == nil {
		s.executor = explorer.NewMockExecutor(explorer.WithDelay(cfg.ExplorerDelay))
	}

	input := generator.DefaultInput()
	if cfg.BaseURL != "" {
		input.BaseURL = cfg.BaseURL
	}
	downloads, err := BuildDownloads(s.endpoints, input)
	if err != nil {
		return nil, err
	}
	s.downloads = downloads

	s.mux = http.NewServeMux()
	humaConfig := huma.DefaultConfig("Veeq AI Docs", "1.0.0")
	humaConfig.Info.Description = "Endpoint catalog, downloads and API explorer of the Veeq AI documentation center"
	s.humaAPI = humago.New(s.mux, humaConfig)
	s.humaAPI.UseMiddleware(s.logRequests)

	RegisterHealthEndpoint(s.humaAPI)
	RegisterCatalogEndpoints(s.humaAPI, s.endpoints)
	RegisterDownloadEndpoints(s.humaAPI, s.downloads)
	RegisterExplorerEndpoints(s.humaAPI, s.endpoints, s.executor, input.BaseURL)

	s.mux.Handle("/swagger", SwaggerHandler())
	s.mux.Handle("/swagger/", SwaggerHandler())

	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// API returns the huma API, for inspecting the served OpenAPI document
func (s *Server) API() huma.API {
	return s.humaAPI
}

// Start begins listening for incoming HTTP requests
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.config.Address).Int("endpoints", len(s.endpoints)).Msg("docs server starting")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()
	next(ctx)
	s.logger.Info().
		Str("method", ctx.Method()).
		Str("path", ctx.URL().Path).
		Str("operation", ctx.Operation().OperationID).
		Int("status", ctx.Status()).
		Dur("duration", time.Since(start)).
		Msg("request")
}
