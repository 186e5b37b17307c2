package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/coupon"
	"github.com/hatbazar/marketplace-api/internal/domain"
)

// ValidateCouponRequest carries a code and the subtotal it applies to
type ValidateCouponRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal" binding:"min=0"`
}

// ValidateCouponResponse returns the applied coupon and its discount
type ValidateCouponResponse struct {
	Coupon   *domain.AppliedCoupon `json:"coupon"`
	Discount float64               `json:"discount"`
}

// HandleValidateCoupon handles POST /v1/coupons/validate
func HandleValidateCoupon(evaluator *coupon.Evaluator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		applied, err := evaluator.ValidateAndApply(c.Request.Context(), req.Code, req.Subtotal)
		if err != nil {
			// Every evaluator failure carries a user-facing message.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, ValidateCouponResponse{
			Coupon:   applied,
			Discount: coupon.ComputeDiscount(applied, req.Subtotal),
		})
	}
}
