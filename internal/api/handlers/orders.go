package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/api/middleware"
	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/internal/repository"
	pkgerrors "github.com/hatbazar/marketplace-api/pkg/errors"
)

// OrderResponse represents the order detail payload
type OrderResponse struct {
	ID             string                     `json:"id"`
	OrderNumber    string                     `json:"order_number"`
	Status         domain.OrderStatus         `json:"status"`
	PaymentMethod  domain.PaymentMethod       `json:"payment_method"`
	PaymentStatus  domain.PaymentStatus       `json:"payment_status"`
	DeliveryMethod domain.DeliveryMethod      `json:"delivery_method"`
	Delivery       domain.DeliveryInformation `json:"delivery"`
	DeliveryCharge float64                    `json:"delivery_charge"`
	TotalAmount    float64                    `json:"total_amount"`
	OrderDate      string                     `json:"order_date"`
	DeliveryDate   string                     `json:"delivery_date"`
	ConsignmentID  *string                    `json:"consignment_id,omitempty"`
	TrackingCode   *string                    `json:"tracking_code,omitempty"`
	TrackingURL    *string                    `json:"tracking_url,omitempty"`
	Items          []OrderItemResponse        `json:"items"`
}

type OrderItemResponse struct {
	ProductID       string  `json:"product_id"`
	VendorName      string  `json:"vendor_name"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountedPrice float64 `json:"discounted_price"`
	Size            string  `json:"size,omitempty"`
	Color           string  `json:"color,omitempty"`
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopper, ok := middleware.GetShopperFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*pkgerrors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if order.ShopperID != shopper.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		items := make([]OrderItemResponse, len(order.Items))
		for i, item := range order.Items {
			items[i] = OrderItemResponse{
				ProductID:       item.ProductID,
				VendorName:      item.VendorName,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				DiscountedPrice: item.DiscountedPrice,
				Size:            item.Size,
				Color:           item.Color,
			}
		}

		c.JSON(http.StatusOK, OrderResponse{
			ID:             order.ID.String(),
			OrderNumber:    order.OrderNumber,
			Status:         order.Status,
			PaymentMethod:  order.PaymentMethod,
			PaymentStatus:  order.PaymentStatus,
			DeliveryMethod: order.DeliveryMethod,
			Delivery:       order.Delivery,
			DeliveryCharge: order.DeliveryCharge,
			TotalAmount:    order.TotalAmount,
			OrderDate:      order.OrderDate.Format(time.RFC3339),
			DeliveryDate:   order.DeliveryDate.Format(time.RFC3339),
			ConsignmentID:  order.ConsignmentID,
			TrackingCode:   order.TrackingCode,
			TrackingURL:    order.TrackingURL,
			Items:          items,
		})
	}
}
