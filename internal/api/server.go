// Package api serves the mountain table over HTTP.
//
// Data routes are mounted under the configured root path:
//
//	GET /                rows matching ?keys=&values=, paginated
//	GET /keys            column names
//	GET /values/:key     distinct values of a column, paginated
//	GET /counts/:key     per-value counts over filtered rows, paginated
//
// /healthz and /metrics are always served at the top level.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/opendata-yamanashi/yama-api/internal/engine"
	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// Options configures a Server.
type Options struct {
	RootPath   string
	CORSOrigin string
	RateLimit  types.RateLimit
	Logger     *slog.Logger
}

// Server routes HTTP requests to the query engine.
type Server struct {
	engine  *engine.Engine
	router  *gin.Engine
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer builds the router and registers every route.
func NewServer(e *engine.Engine, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		engine:  e,
		router:  gin.New(),
		metrics: NewMetrics(e.Snapshot),
		logger:  logger,
	}

	origin := opts.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	s.router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggerMiddleware(logger),
		s.metrics.Middleware(),
		CORSMiddleware(origin),
	)

	s.router.GET("/healthz", s.Health)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	data := s.router.Group(NormalizeRootPath(opts.RootPath))
	if opts.RateLimit.RequestsPerMinute > 0 {
		data.Use(NewRateLimiter(opts.RateLimit).Middleware())
	}
	data.GET("/", s.Rows)
	data.GET("/keys", s.Keys)
	data.GET("/values/:key", s.Values)
	data.GET("/counts/:key", s.Counts)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Not Found"})
	})

	return s
}

// NormalizeRootPath returns p with a leading slash and no trailing slash.
// The empty path and "/" both mean the server root.
func NormalizeRootPath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }
