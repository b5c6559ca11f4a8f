package http

import (
	"github.com/gin-gonic/gin"
	"github.com/greentail/backend/config"
	"github.com/greentail/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router. A nil metrics skips
// request instrumentation and the /metrics endpoint.
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger, m *metrics.Metrics) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if m != nil {
		router.Use(MetricsMiddleware(m))
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)))
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.POST("/search", handler.SearchProducts)
			products.POST("/compare", handler.CompareProducts)
			products.GET("/:id", handler.GetProduct)
		}

		quiz := v1.Group("/quiz")
		{
			quiz.POST("/matches", handler.QuizMatches)
		}
	}

	return router
}
