package http

import (
	"github.com/gin-gonic/gin"
	"github.com/pakbuy/backend/config"
	"github.com/rs/zerolog"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	httpLogger := logger.With().Str("component", "http").Logger()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(httpLogger))
	router.Use(LoggerMiddleware(httpLogger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	registerRoutes(router, handler)

	// API v1 routes
	registerRoutes(router.Group("/api/v1"), handler)

	return router
}

func registerRoutes(r gin.IRoutes, handler *Handler) {
	r.GET("/", handler.Index)
	r.GET("/health", handler.HealthCheck)
	r.GET("/test", handler.Test)
	r.POST("/clean-title", handler.CleanTitle)
	r.POST("/clean-batch", handler.CleanBatch)
}
