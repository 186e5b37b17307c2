package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/pkg/errors"
)

type couponRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *sql.DB, logger *zap.Logger) *couponRepository {
	return &couponRepository{
		db:     db,
		logger: logger,
	}
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `
		SELECT id, code, value, type, title, minimum_order_amount, status, start_date, ending_date, short_description, created_at, updated_at
		FROM coupons
		WHERE UPPER(code) = $1
	`

	var coupon domain.Coupon
	err := r.db.QueryRowContext(ctx, query, strings.ToUpper(code)).Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Value,
		&coupon.Type,
		&coupon.Title,
		&coupon.MinimumOrderAmount,
		&coupon.Status,
		&coupon.StartDate,
		&coupon.EndingDate,
		&coupon.ShortDescription,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &errors.ErrNotFound{Resource: "coupon"}
		}
		r.logger.Error("Failed to get coupon", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	return &coupon, nil
}

func (r *couponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}

	query := `
		INSERT INTO coupons (id, code, value, type, title, minimum_order_amount, status, start_date, ending_date, short_description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.Value,
		coupon.Type,
		coupon.Title,
		coupon.MinimumOrderAmount,
		coupon.Status,
		coupon.StartDate,
		coupon.EndingDate,
		coupon.ShortDescription,
	)
	if err != nil {
		r.logger.Error("Failed to create coupon", zap.Error(err))
		return err
	}

	return nil
}
