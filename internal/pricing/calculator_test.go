package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hatbazar/marketplace-api/internal/domain"
)

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 900.0, ComputeTotal(1000, 100, 0))
	assert.Equal(t, 960.0, ComputeTotal(1000, 100, 60))
	assert.Equal(t, 0.0, ComputeTotal(0, 0, 0))
}

func TestComputeTotal_NeverNegative(t *testing.T) {
	// Oversized discount clamps the total at zero
	assert.Equal(t, 0.0, ComputeTotal(1000, 1000, 0))
	assert.Equal(t, 0.0, ComputeTotal(100, 500, 0))
}

func TestComputeTotal_Identity(t *testing.T) {
	// For discount <= subtotal the total is exactly the linear combination
	cases := []struct {
		subtotal, discount, charge float64
	}{
		{1000, 100, 60},
		{500, 500, 0},
		{0, 0, 120},
		{1299.99, 129.99, 80},
	}
	for _, tc := range cases {
		got := ComputeTotal(tc.subtotal, tc.discount, tc.charge)
		assert.InDelta(t, tc.subtotal-tc.discount+tc.charge, got, 1e-9)
		assert.GreaterOrEqual(t, got, 0.0)
	}
}

func TestComputeSavings(t *testing.T) {
	lines := []domain.CartLine{
		{ID: "a", Price: 500, OriginalPrice: 600, Quantity: 2},
		{ID: "b", Price: 300, OriginalPrice: 300, Quantity: 1},
	}

	// Per-line sum, not a re-derivation from totals
	assert.Equal(t, 200.0, ComputeSavings(lines))
}

func TestSubtotal(t *testing.T) {
	lines := []domain.CartLine{
		{ID: "a", Price: 500, Quantity: 2},
		{ID: "b", Price: 300, Quantity: 1},
	}

	assert.Equal(t, 1300.0, Subtotal(lines))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(33.333333))
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 100.0, Round2(100))
}
