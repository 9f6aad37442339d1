package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/josuebusta/portfolio/metrics"
	"github.com/josuebusta/portfolio/middleware"
)

type RouterConfig struct {
	Albums       *AlbumHandler
	Metrics      *metrics.Metrics
	RateLimiter  *middleware.RateLimiter
	MaxBodyBytes int64
}

// NewRouter builds the engine main serves. Optional pieces left nil in cfg are
// skipped.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
	}
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.NewValidationMiddleware(cfg.MaxBodyBytes).ValidateRequest())

	router.GET("/health", cfg.Albums.Health)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := router.Group("")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware())
	}
	cfg.Albums.RegisterRoutes(api)

	return router
}
