package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/repository"
)

// NewRepositories wires all Postgres repository implementations
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Shopper: NewShopperRepository(db, logger),
		Coupon:  NewCouponRepository(db, logger),
		Order:   NewOrderRepository(db, logger),
		Cart:    NewCartRepository(db, logger),
	}
}
