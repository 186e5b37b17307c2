package pricing

import (
	"math"

	"github.com/hatbazar/marketplace-api/internal/domain"
)

// Round2 rounds a monetary amount to two decimal places
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ComputeTotal combines subtotal, coupon discount and delivery charge into
// the final payable amount. The result is clamped at zero so an oversized
// discount can never produce a negative total.
func ComputeTotal(subtotal, couponDiscount, deliveryCharge float64) float64 {
	total := subtotal - couponDiscount + deliveryCharge
	if total < 0 {
		return 0
	}
	return total
}

// ComputeSavings sums per-line savings (originalPrice - price) * quantity.
// Display-only; summed per line rather than re-derived from totals so it
// cannot drift from differently-rounded paths.
func ComputeSavings(lines []domain.CartLine) float64 {
	var savings float64
	for _, line := range lines {
		savings += (line.OriginalPrice - line.Price) * float64(line.Quantity)
	}
	return savings
}

// Subtotal sums price * quantity over the given lines
func Subtotal(lines []domain.CartLine) float64 {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
	}
	return subtotal
}
