package delivery

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/domain"
)

// RateService resolves a (district, upazila) pair to a numeric charge
type RateService interface {
	Rate(ctx context.Context, district, upazila string) (float64, error)
}

// Resolver caches the last-resolved charge per (district, upazila) pair for
// the lifetime of a checkout session. Incomplete input resolves to
// (0, false) so downstream total computation never sees NaN.
type Resolver struct {
	rates  RateService
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]float64
}

// NewResolver creates a new delivery charge resolver
func NewResolver(rates RateService, logger *zap.Logger) *Resolver {
	return &Resolver{
		rates:  rates,
		logger: logger,
		cache:  make(map[string]float64),
	}
}

// Resolve returns the delivery charge for the chosen destination and method.
// The boolean reports whether the charge is actually resolved; it is false
// while either destination field is still empty. Office pickup always
// resolves to zero without consulting the rate service.
func (r *Resolver) Resolve(ctx context.Context, district, upazila string, method domain.DeliveryMethod) (float64, bool, error) {
	if method == domain.DeliveryMethodOfficePickup {
		return 0, true, nil
	}
	if district == "" || upazila == "" {
		return 0, false, nil
	}

	key := district + "|" + upazila

	r.mu.Lock()
	charge, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return charge, true, nil
	}

	charge, err := r.rates.Rate(ctx, district, upazila)
	if err != nil {
		r.logger.Error("Failed to resolve delivery charge",
			zap.String("district", district),
			zap.String("upazila", upazila),
			zap.Error(err),
		)
		return 0, false, err
	}

	r.mu.Lock()
	r.cache[key] = charge
	r.mu.Unlock()

	return charge, true, nil
}
