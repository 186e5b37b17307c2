package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	deliveryJSON, err := json.Marshal(order.Delivery)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery information: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, order_number, shopper_id, delivery_method, delivery, delivery_charge, total_amount, payment_method, payment_status, status, order_date, delivery_date, coupon_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`

	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID,
		order.OrderNumber,
		order.ShopperID,
		order.DeliveryMethod,
		deliveryJSON,
		order.DeliveryCharge,
		order.TotalAmount,
		order.PaymentMethod,
		order.PaymentStatus,
		order.Status,
		order.OrderDate,
		order.DeliveryDate,
		order.CouponID,
	)
	if err != nil {
		r.logger.Error("Failed to insert order", zap.Error(err))
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, vendor_name, quantity, unit_price, discounted_price, size, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.VendorName,
			item.Quantity,
			item.UnitPrice,
			item.DiscountedPrice,
			item.Size,
			item.Color,
		)
		if err != nil {
			r.logger.Error("Failed to insert order item", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, order_number, shopper_id, delivery_method, delivery, delivery_charge, total_amount, payment_method, payment_status, status, order_date, delivery_date, coupon_id, consignment_id, tracking_code, tracking_url, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	var deliveryJSON []byte
	var consignmentID, trackingCode, trackingURL sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.ShopperID,
		&order.DeliveryMethod,
		&deliveryJSON,
		&order.DeliveryCharge,
		&order.TotalAmount,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.Status,
		&order.OrderDate,
		&order.DeliveryDate,
		&order.CouponID,
		&consignmentID,
		&trackingCode,
		&trackingURL,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &errors.ErrNotFound{Resource: "order"}
		}
		r.logger.Error("Failed to get order", zap.Error(err))
		return nil, err
	}

	if err := json.Unmarshal(deliveryJSON, &order.Delivery); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery information: %w", err)
	}
	if consignmentID.Valid {
		order.ConsignmentID = &consignmentID.String
	}
	if trackingCode.Valid {
		order.TrackingCode = &trackingCode.String
	}
	if trackingURL.Valid {
		order.TrackingURL = &trackingURL.String
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *orderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, vendor_name, quantity, unit_price, discounted_price, size, color, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to query order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.VendorName,
			&item.Quantity,
			&item.UnitPrice,
			&item.DiscountedPrice,
			&item.Size,
			&item.Color,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "order"}
	}

	return nil
}

func (r *orderRepository) UpdateTracking(ctx context.Context, id uuid.UUID, consignmentID, trackingCode, trackingURL string) error {
	query := `
		UPDATE orders
		SET consignment_id = $2, tracking_code = $3, tracking_url = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, consignmentID, trackingCode, trackingURL)
	if err != nil {
		r.logger.Error("Failed to update order tracking", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "order"}
	}

	return nil
}
