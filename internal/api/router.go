package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/api/handlers"
	"github.com/hatbazar/marketplace-api/internal/api/middleware"
	"github.com/hatbazar/marketplace-api/internal/checkout"
	"github.com/hatbazar/marketplace-api/internal/config"
	"github.com/hatbazar/marketplace-api/internal/coupon"
	"github.com/hatbazar/marketplace-api/internal/navigation"
	"github.com/hatbazar/marketplace-api/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	orch *checkout.Orchestrator,
	evaluator *coupon.Evaluator,
	nav *navigation.Resolver,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(repos, logger))
	{
		v1.POST("/checkout/quote", handlers.HandleQuote(orch, logger))
		v1.POST("/checkout/submit", handlers.HandleSubmit(orch, logger))
		v1.POST("/coupons/validate", handlers.HandleValidateCoupon(evaluator, logger))
		v1.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))
		v1.DELETE("/carts", handlers.HandleClearCart(repos, logger))
		v1.GET("/navigation/targets", handlers.HandleNavigationTargets(nav, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
