// Package server exposes the query service over HTTP with gin.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/divah21/stage-one-backend/internal/logger"
	"github.com/divah21/stage-one-backend/internal/observability"
	"github.com/divah21/stage-one-backend/internal/service"
)

// Options configures New.
type Options struct {
	Service *service.Service
	Logger  *zap.SugaredLogger
	// Metrics enables instrumentation and, with MetricsPath, the scrape
	// endpoint. Nil disables both.
	Metrics     *observability.Metrics
	MetricsPath string
	// Mode is the gin mode; empty keeps gin's current mode.
	Mode string
}

// Server is the HTTP front end of the string analyzer.
type Server struct {
	engine  *gin.Engine
	httpSrv *http.Server
	log     *zap.SugaredLogger
}

// New builds the router with its middleware and routes.
func New(opts Options) *Server {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Logger
	}
	log = log.With(logger.FieldComponent, "server")

	router := gin.New()
	// Path values may contain escaped slashes.
	router.UseRawPath = true
	router.UnescapePathValues = true

	router.Use(RequestID(), AccessLog(log), gin.Recovery())
	if opts.Metrics != nil {
		router.Use(Instrument(opts.Metrics))
		if opts.MetricsPath != "" {
			router.GET(opts.MetricsPath, gin.WrapH(opts.Metrics.Handler()))
		}
	}

	SetupRoutes(router, NewHandlers(opts.Service, opts.Metrics))

	return &Server{
		engine: router,
		httpSrv: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Handler returns the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until Shutdown. It returns nil after a
// clean shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Infow("http server listening", logger.FieldAddress, ln.Addr().String())
	if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Infow("http server shutting down")
	return s.httpSrv.Shutdown(ctx)
}
