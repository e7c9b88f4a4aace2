// Package server exposes the measurement engine over HTTP for estimating
// dashboards and CRM integrations. One POST runs the same chain the CLI
// runs; the catalog and method-comparison tables are read-only GETs.
package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/reusecanada/roofline/internal/config"
)

// BuildInfo identifies the running binary on /version.
type BuildInfo struct {
	Version   string
	BuildTime string
}

// Server wraps the gin router and its http.Server.
type Server struct {
	cfg    config.ServerConfig
	router *gin.Engine
	srv    *http.Server
	log    *zap.Logger
}

// New assembles the router with the standard middleware stack and routes.
func New(cfg config.ServerConfig, h *Handler, info BuildInfo, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(Logger(log))
	router.Use(CORS())
	router.Use(RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, h, info)

	return &Server{
		cfg:    cfg,
		router: router,
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: log,
	}
}

// Start blocks serving requests until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	s.log.Info("Server starting", zap.String("addr", s.cfg.Addr()))
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func registerRoutes(r *gin.Engine, h *Handler, info BuildInfo) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    info.Version,
			"build_time": info.BuildTime,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", h.Analyze)
		api.GET("/pricebook", h.Pricebook)
		api.GET("/compare", h.Compare)
	}

	r.NoRoute(func(c *gin.Context) {
		NotFound(c, "Not found")
	})
}
