package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/internal/repository"
	pkgerrors "github.com/hatbazar/marketplace-api/pkg/errors"
)

const shopperContextKey = "shopper"

// AuthMiddleware resolves the bearer token to a shopper account
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")

		shopper, err := repos.Shopper.GetByToken(c.Request.Context(), token)
		if err != nil {
			if _, ok := err.(*pkgerrors.ErrUnauthorized); !ok {
				logger.Error("Failed to authenticate shopper", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
			return
		}

		c.Set(shopperContextKey, shopper)
		c.Next()
	}
}

// GetShopperFromContext returns the authenticated shopper set by AuthMiddleware
func GetShopperFromContext(c *gin.Context) (*domain.Shopper, bool) {
	value, exists := c.Get(shopperContextKey)
	if !exists {
		return nil, false
	}
	shopper, ok := value.(*domain.Shopper)
	return shopper, ok
}
