package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hatbazar/marketplace-api/internal/domain"
)

// ShopperRepository provides access to shopper accounts
type ShopperRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Shopper, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shopper, error)
	Create(ctx context.Context, shopper *domain.Shopper) error
}

// CouponRepository provides coupon lookup and administration
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	Create(ctx context.Context, coupon *domain.Coupon) error
}

// OrderRepository persists orders, their items and status changes
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	UpdateTracking(ctx context.Context, id uuid.UUID, consignmentID, trackingCode, trackingURL string) error
}

// CartRepository persists the shopper's server-side cart
type CartRepository interface {
	GetByShopper(ctx context.Context, shopperID uuid.UUID) ([]domain.CartLine, error)
	Save(ctx context.Context, shopperID uuid.UUID, lines []domain.CartLine) error
	ClearByShopper(ctx context.Context, shopperID uuid.UUID) error
}

// Repositories aggregates all repository implementations
type Repositories struct {
	Shopper ShopperRepository
	Coupon  CouponRepository
	Order   OrderRepository
	Cart    CartRepository
}
