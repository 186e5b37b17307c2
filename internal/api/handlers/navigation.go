package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/navigation"
)

// HandleNavigationTargets handles GET /v1/navigation/targets
func HandleNavigationTargets(resolver *navigation.Resolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		action := navigation.ActionType(c.Query("action"))
		if !action.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action type"})
			return
		}

		targets, err := resolver.Targets(c.Request.Context(), action, c.Query("q"))
		if err != nil {
			logger.Error("Failed to resolve navigation targets",
				zap.String("action", string(action)),
				zap.Error(err),
			)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch targets"})
			return
		}

		if targets == nil {
			targets = []navigation.Target{}
		}

		c.JSON(http.StatusOK, gin.H{"targets": targets})
	}
}
