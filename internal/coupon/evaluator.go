package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/internal/pricing"
	pkgerrors "github.com/hatbazar/marketplace-api/pkg/errors"
)

var (
	ErrCodeRequired = errors.New("coupon code required")
	ErrInvalidCode  = errors.New("invalid coupon code")
	ErrNotActive    = errors.New("coupon not active")
	ErrNotYetValid  = errors.New("coupon not yet valid")
	ErrExpired      = errors.New("coupon expired")
)

// MinimumOrderError is returned when the subtotal is below the coupon's
// minimum order amount; the message must name the required minimum.
type MinimumOrderError struct {
	Minimum float64
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("minimum order amount of %.2f not met", e.Minimum)
}

// Store provides coupon lookup by code
type Store interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

// Evaluator validates coupon codes against status, validity window and
// minimum order constraints, and computes discount amounts.
type Evaluator struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewEvaluator creates a new coupon evaluator
func NewEvaluator(store Store, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ValidateAndApply checks a code against the subtotal and returns the
// applied-coupon value object. Each failure condition short-circuits with a
// distinct user-facing error, in a fixed order.
func (e *Evaluator) ValidateAndApply(ctx context.Context, code string, subtotal float64) (*domain.AppliedCoupon, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrCodeRequired
	}

	c, err := e.store.GetByCode(ctx, code)
	if err != nil || c == nil {
		var notFound *pkgerrors.ErrNotFound
		if err != nil && !errors.As(err, &notFound) {
			e.logger.Warn("Coupon lookup failed", zap.String("code", code), zap.Error(err))
		}
		return nil, ErrInvalidCode
	}

	if !strings.EqualFold(c.Status, "active") {
		return nil, ErrNotActive
	}

	now := e.now()
	if now.Before(c.StartDate) {
		return nil, ErrNotYetValid
	}
	if now.After(c.EndingDate) {
		return nil, ErrExpired
	}

	if subtotal < c.MinimumOrderAmount {
		return nil, &MinimumOrderError{Minimum: c.MinimumOrderAmount}
	}

	return &domain.AppliedCoupon{
		ID:                 c.ID,
		Code:               c.Code,
		Value:              c.Value,
		Type:               c.Type,
		Title:              c.Title,
		MinimumOrderAmount: c.MinimumOrderAmount,
	}, nil
}

// ComputeDiscount returns the discount amount for an applied coupon.
// Percentage-like types take round2(subtotal * value / 100); anything else is
// treated as a fixed amount capped at the subtotal, so the discount can never
// exceed the amount it is applied to.
func ComputeDiscount(c *domain.AppliedCoupon, subtotal float64) float64 {
	if c == nil {
		return 0
	}
	if isPercentage(c.Type) {
		return pricing.Round2(subtotal * c.Value / 100)
	}
	if c.Value > subtotal {
		return subtotal
	}
	return c.Value
}

// isPercentage matches the coupon type by case-insensitive substring
// containment rather than strict equality. Upstream has shipped variants
// like "Percentage" and "percentageDiscount"; tightening this would start
// rejecting coupons that currently work.
func isPercentage(couponType string) bool {
	return strings.Contains(strings.ToLower(couponType), "percentage")
}
