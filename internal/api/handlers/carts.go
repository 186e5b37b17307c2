package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/api/middleware"
	"github.com/hatbazar/marketplace-api/internal/repository"
)

// HandleClearCart handles DELETE /v1/carts. Clearing an already-empty cart
// succeeds; the call is idempotent.
func HandleClearCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopper, ok := middleware.GetShopperFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := repos.Cart.ClearByShopper(c.Request.Context(), shopper.ID); err != nil {
			logger.Error("Failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
