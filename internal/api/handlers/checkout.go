package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/api/middleware"
	"github.com/hatbazar/marketplace-api/internal/checkout"
	"github.com/hatbazar/marketplace-api/internal/coupon"
	"github.com/hatbazar/marketplace-api/internal/domain"
	pkgerrors "github.com/hatbazar/marketplace-api/pkg/errors"
)

// QuoteRequest prices a selected-line set before submission
type QuoteRequest struct {
	Lines          []domain.CartLine     `json:"lines" binding:"required,min=1"`
	CouponCode     string                `json:"coupon_code"`
	District       string                `json:"district"`
	Upazila        string                `json:"upazila"`
	DeliveryMethod domain.DeliveryMethod `json:"delivery_method"`
}

// QuoteResponse is the priced view returned to the checkout page
type QuoteResponse struct {
	Subtotal       float64               `json:"subtotal"`
	Savings        float64               `json:"savings"`
	CouponDiscount float64               `json:"coupon_discount"`
	DeliveryCharge float64               `json:"delivery_charge"`
	ChargeResolved bool                  `json:"charge_resolved"`
	Total          float64               `json:"total"`
	Coupon         *domain.AppliedCoupon `json:"coupon,omitempty"`
}

// HandleQuote handles POST /v1/checkout/quote
func HandleQuote(orch *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopper, ok := middleware.GetShopperFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		session := orch.NewSession(shopper, req.Lines)
		session.Method = req.DeliveryMethod
		if req.District != "" {
			session.Info.District = req.District
		}
		if req.Upazila != "" {
			session.Info.Upazila = req.Upazila
		}

		if req.CouponCode != "" {
			if _, err := orch.ApplyCoupon(c.Request.Context(), session, req.CouponCode); err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}

		quote, err := orch.PriceQuote(c.Request.Context(), session)
		if err != nil {
			logger.Error("Failed to price quote", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to resolve delivery charge"})
			return
		}

		c.JSON(http.StatusOK, QuoteResponse{
			Subtotal:       quote.Subtotal,
			Savings:        quote.Savings,
			CouponDiscount: quote.CouponDiscount,
			DeliveryCharge: quote.DeliveryCharge,
			ChargeResolved: quote.ChargeResolved,
			Total:          quote.Total,
			Coupon:         session.Coupon,
		})
	}
}

// SubmitRequest carries the assembled checkout form
type SubmitRequest struct {
	Delivery       domain.DeliveryInformation `json:"delivery_information" binding:"required"`
	DeliveryMethod domain.DeliveryMethod      `json:"delivery_method"`
	PaymentMethod  domain.PaymentMethod       `json:"payment_method" binding:"required"`
	Lines          []domain.CartLine          `json:"lines"`
	CouponCode     string                     `json:"coupon_code"`
}

// SubmitResponse reports the submission outcome
type SubmitResponse struct {
	Success     bool                 `json:"success"`
	Data        *SubmitResponseData  `json:"data,omitempty"`
	RedirectURL string               `json:"redirect_url,omitempty"`
	Tracking    *domain.TrackingNote `json:"tracking,omitempty"`
	Message     string               `json:"message,omitempty"`
}

type SubmitResponseData struct {
	Order SubmitResponseOrder `json:"order"`
}

type SubmitResponseOrder struct {
	OrderID string `json:"orderId"`
	ID      string `json:"_id"`
}

// HandleSubmit handles POST /v1/checkout/submit
func HandleSubmit(orch *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopper, ok := middleware.GetShopperFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		session := orch.NewSession(shopper, req.Lines)
		session.Info = req.Delivery
		session.Method = req.DeliveryMethod
		session.PaymentMethod = req.PaymentMethod

		if req.CouponCode != "" {
			if _, err := orch.ApplyCoupon(c.Request.Context(), session, req.CouponCode); err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
		}

		result, err := orch.Submit(c.Request.Context(), session)
		if err != nil {
			writeSubmitError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, SubmitResponse{
			Success: true,
			Data: &SubmitResponseData{
				Order: SubmitResponseOrder{
					OrderID: result.Order.OrderNumber,
					ID:      result.Order.ID.String(),
				},
			},
			RedirectURL: result.RedirectURL,
			Tracking:    result.Tracking,
		})
	}
}

// writeSubmitError maps orchestrator failures to user-facing responses. The
// dependent-call failures keep their own messages so the shopper knows the
// order row already exists.
func writeSubmitError(c *gin.Context, logger *zap.Logger, err error) {
	var validationErr *pkgerrors.ErrValidation
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, SubmitResponse{Success: false, Message: validationErr.Message})
		return
	}

	if errors.Is(err, checkout.ErrSubmitInProgress) {
		c.JSON(http.StatusConflict, SubmitResponse{Success: false, Message: err.Error()})
		return
	}

	var minOrderErr *coupon.MinimumOrderError
	if errors.As(err, &minOrderErr) {
		c.JSON(http.StatusUnprocessableEntity, SubmitResponse{Success: false, Message: err.Error()})
		return
	}

	var gatewayErr *checkout.GatewayInitError
	if errors.As(err, &gatewayErr) {
		c.JSON(http.StatusBadGateway, SubmitResponse{Success: false, Message: gatewayErr.Error()})
		return
	}

	var fulfillmentErr *checkout.FulfillmentError
	if errors.As(err, &fulfillmentErr) {
		c.JSON(http.StatusBadGateway, SubmitResponse{Success: false, Message: fulfillmentErr.Error()})
		return
	}

	logger.Error("Checkout submission failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, SubmitResponse{
		Success: false,
		Message: "order submission failed, please try again or contact support",
	})
}
