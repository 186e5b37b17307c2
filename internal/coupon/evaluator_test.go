package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/domain"
	pkgerrors "github.com/hatbazar/marketplace-api/pkg/errors"
)

// mockStore implements Store for testing
type mockStore struct {
	coupon *domain.Coupon
	err    error
}

func (m *mockStore) GetByCode(_ context.Context, _ string) (*domain.Coupon, error) {
	return m.coupon, m.err
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func validCoupon() *domain.Coupon {
	return &domain.Coupon{
		ID:                 uuid.New(),
		Code:               "EID10",
		Value:              10,
		Type:               "percentage",
		Title:              "Eid offer",
		MinimumOrderAmount: 500,
		Status:             "active",
		StartDate:          fixedNow().AddDate(0, 0, -1),
		EndingDate:         fixedNow().AddDate(0, 0, 30),
	}
}

func newTestEvaluator(store Store) *Evaluator {
	e := NewEvaluator(store, zap.NewNop())
	e.now = fixedNow
	return e
}

func TestValidateAndApply_Success(t *testing.T) {
	e := newTestEvaluator(&mockStore{coupon: validCoupon()})

	applied, err := e.ValidateAndApply(context.Background(), "EID10", 1000)

	require.NoError(t, err)
	assert.Equal(t, "EID10", applied.Code)
	assert.Equal(t, 10.0, applied.Value)
	assert.Equal(t, 500.0, applied.MinimumOrderAmount)
}

func TestValidateAndApply_EmptyCode(t *testing.T) {
	e := newTestEvaluator(&mockStore{coupon: validCoupon()})

	_, err := e.ValidateAndApply(context.Background(), "  ", 1000)

	assert.ErrorIs(t, err, ErrCodeRequired)
}

func TestValidateAndApply_UnknownCode(t *testing.T) {
	e := newTestEvaluator(&mockStore{err: &pkgerrors.ErrNotFound{Resource: "coupon"}})

	_, err := e.ValidateAndApply(context.Background(), "NOPE", 1000)

	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestValidateAndApply_Inactive(t *testing.T) {
	c := validCoupon()
	c.Status = "draft"
	e := newTestEvaluator(&mockStore{coupon: c})

	_, err := e.ValidateAndApply(context.Background(), "EID10", 1000)

	assert.ErrorIs(t, err, ErrNotActive)
}

func TestValidateAndApply_NotYetValid(t *testing.T) {
	c := validCoupon()
	c.StartDate = fixedNow().AddDate(0, 0, 5)
	e := newTestEvaluator(&mockStore{coupon: c})

	_, err := e.ValidateAndApply(context.Background(), "EID10", 1000)

	assert.ErrorIs(t, err, ErrNotYetValid)
}

func TestValidateAndApply_Expired(t *testing.T) {
	c := validCoupon()
	c.EndingDate = fixedNow().AddDate(0, 0, -1)
	e := newTestEvaluator(&mockStore{coupon: c})

	_, err := e.ValidateAndApply(context.Background(), "EID10", 1000)

	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateAndApply_BelowMinimumOrder(t *testing.T) {
	// subtotal 300 against a 500 minimum leaves no coupon applied
	e := newTestEvaluator(&mockStore{coupon: validCoupon()})

	applied, err := e.ValidateAndApply(context.Background(), "EID10", 300)

	assert.Nil(t, applied)
	var minErr *MinimumOrderError
	require.ErrorAs(t, err, &minErr)
	assert.Equal(t, 500.0, minErr.Minimum)
	assert.Contains(t, err.Error(), "500")
}

func TestComputeDiscount_Percentage(t *testing.T) {
	applied := &domain.AppliedCoupon{Type: "percentage", Value: 10}

	assert.Equal(t, 100.0, ComputeDiscount(applied, 1000))
}

func TestComputeDiscount_PercentageTypeDrift(t *testing.T) {
	// Upstream has shipped variants of the type string; substring matching
	// keeps them working
	for _, typ := range []string{"Percentage", "PERCENTAGE", "percentageDiscount"} {
		applied := &domain.AppliedCoupon{Type: typ, Value: 10}
		assert.Equal(t, 100.0, ComputeDiscount(applied, 1000), "type %q", typ)
	}
}

func TestComputeDiscount_PercentageRounding(t *testing.T) {
	applied := &domain.AppliedCoupon{Type: "percentage", Value: 7.5}

	assert.Equal(t, 74.99, ComputeDiscount(applied, 999.9))
}

func TestComputeDiscount_FixedCappedAtSubtotal(t *testing.T) {
	applied := &domain.AppliedCoupon{Type: "fixed", Value: 5000}

	assert.Equal(t, 1000.0, ComputeDiscount(applied, 1000))
}

func TestComputeDiscount_FixedBelowSubtotal(t *testing.T) {
	applied := &domain.AppliedCoupon{Type: "fixed", Value: 150}

	assert.Equal(t, 150.0, ComputeDiscount(applied, 1000))
}

func TestComputeDiscount_NeverExceedsSubtotal(t *testing.T) {
	cases := []*domain.AppliedCoupon{
		{Type: "fixed", Value: 99999},
		{Type: "percentage", Value: 100},
		{Type: "something-else", Value: 2000},
	}
	for _, applied := range cases {
		assert.LessOrEqual(t, ComputeDiscount(applied, 750), 750.0)
	}
}

func TestComputeDiscount_NilCoupon(t *testing.T) {
	assert.Equal(t, 0.0, ComputeDiscount(nil, 1000))
}
