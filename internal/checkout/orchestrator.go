package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/coupon"
	"github.com/hatbazar/marketplace-api/internal/delivery"
	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/internal/pricing"
	pkgerrors "github.com/hatbazar/marketplace-api/pkg/errors"
)

// State is the checkout session's position in the submission lifecycle
type State string

const (
	StateCollectingInfo State = "CollectingInfo"
	StateReady          State = "Ready"
	StateSubmitting     State = "Submitting"
	StateSucceeded      State = "Succeeded"
	StateFailed         State = "Failed"
)

// IsTerminal reports whether the state ends a submission attempt
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// OrderStore persists orders and their status changes
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	UpdateTracking(ctx context.Context, id uuid.UUID, consignmentID, trackingCode, trackingURL string) error
}

// CartStore clears a shopper's server-side cart
type CartStore interface {
	ClearByShopper(ctx context.Context, shopperID uuid.UUID) error
}

// Gateway requests a payment redirect URL for a created order
type Gateway interface {
	PaymentURL(ctx context.Context, orderID string, amount float64) (string, error)
}

// Session holds one shopper's checkout state between edits and submission
type Session struct {
	Shopper       *domain.Shopper
	Info          domain.DeliveryInformation
	Method        domain.DeliveryMethod
	PaymentMethod domain.PaymentMethod
	Lines         []domain.CartLine
	Coupon        *domain.AppliedCoupon

	mu          sync.Mutex
	state       State
	lastPayment domain.PaymentMethod
}

// State returns the session's current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RemoveCoupon detaches the applied coupon. No server call is needed; the
// coupon only ever lived in session memory.
func (s *Session) RemoveCoupon() {
	s.Coupon = nil
}

// Result is the terminal outcome of a successful submission
type Result struct {
	Order       *domain.Order
	RedirectURL string
	Tracking    *domain.TrackingNote
}

// Quote is a priced view of the selected lines before submission
type Quote struct {
	Subtotal       float64
	Savings        float64
	CouponDiscount float64
	DeliveryCharge float64
	ChargeResolved bool
	Total          float64
}

// Orchestrator drives the checkout flow: readiness validation, pricing,
// order assembly, and the cash-on-delivery vs online payment branches.
type Orchestrator struct {
	orders    OrderStore
	carts     CartStore
	coupons   *coupon.Evaluator
	charges   *delivery.Resolver
	gateway   Gateway
	sequencer *Sequencer
	kv        KVStore
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrchestrator creates a new checkout orchestrator
func NewOrchestrator(
	orders OrderStore,
	carts CartStore,
	coupons *coupon.Evaluator,
	charges *delivery.Resolver,
	gateway Gateway,
	sequencer *Sequencer,
	kv KVStore,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		orders:    orders,
		carts:     carts,
		coupons:   coupons,
		charges:   charges,
		gateway:   gateway,
		sequencer: sequencer,
		kv:        kv,
		logger:    logger,
		now:       time.Now,
	}
}

// NewSession starts a checkout session for a shopper, seeding the delivery
// form from the saved profile
func (o *Orchestrator) NewSession(shopper *domain.Shopper, lines []domain.CartLine) *Session {
	s := &Session{
		Shopper: shopper,
		Lines:   lines,
		state:   StateCollectingInfo,
	}
	if shopper != nil {
		s.Info.FromShopper(shopper)
	}
	return s
}

// PriceQuote prices the session's selected lines with the current coupon and
// destination. Re-derived on every call; nothing is cached across edits.
func (o *Orchestrator) PriceQuote(ctx context.Context, s *Session) (*Quote, error) {
	subtotal := pricing.Subtotal(s.Lines)
	discount := coupon.ComputeDiscount(s.Coupon, subtotal)

	charge, resolved, err := o.charges.Resolve(ctx, s.Info.District, s.Info.Upazila, s.Method)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve delivery charge: %w", err)
	}

	return &Quote{
		Subtotal:       subtotal,
		Savings:        pricing.ComputeSavings(s.Lines),
		CouponDiscount: discount,
		DeliveryCharge: charge,
		ChargeResolved: resolved,
		Total:          pricing.ComputeTotal(subtotal, discount, charge),
	}, nil
}

// ApplyCoupon validates a code against the session's selected subtotal and
// attaches it, replacing any previously applied coupon
func (o *Orchestrator) ApplyCoupon(ctx context.Context, s *Session, code string) (*domain.AppliedCoupon, error) {
	applied, err := o.coupons.ValidateAndApply(ctx, code, pricing.Subtotal(s.Lines))
	if err != nil {
		return nil, err
	}
	s.Coupon = applied
	return applied, nil
}

// Submit runs one submission attempt. Re-entrant calls while a submission is
// in flight are rejected; retry after failure goes through Retry.
func (o *Orchestrator) Submit(ctx context.Context, s *Session) (*Result, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}

	if problems := o.validate(s); len(problems) > 0 {
		s.state = StateCollectingInfo
		s.mu.Unlock()
		return nil, &pkgerrors.ErrValidation{Message: strings.Join(problems, ", ")}
	}

	s.state = StateSubmitting
	s.lastPayment = s.PaymentMethod
	s.mu.Unlock()

	result, err := o.submit(ctx, s)

	s.mu.Lock()
	if err != nil {
		s.state = StateFailed
	} else {
		s.state = StateSucceeded
	}
	s.mu.Unlock()

	return result, err
}

// Retry re-invokes submission after a terminal failure, with the same
// payment method as the last attempt
func (o *Orchestrator) Retry(ctx context.Context, s *Session) (*Result, error) {
	s.mu.Lock()
	if s.state != StateFailed {
		s.mu.Unlock()
		return nil, ErrRetryNotAllowed
	}
	s.state = StateCollectingInfo
	s.PaymentMethod = s.lastPayment
	s.mu.Unlock()

	return o.Submit(ctx, s)
}

// validate collects all readiness problems so the shopper sees them at once
func (o *Orchestrator) validate(s *Session) []string {
	var problems []string

	if s.Shopper == nil {
		problems = append(problems, "you must be signed in")
	}
	for _, field := range s.Info.Missing() {
		problems = append(problems, field+" is required")
	}
	if s.PaymentMethod == domain.PaymentMethodCOD {
		if len(s.Lines) == 0 {
			problems = append(problems, "cart is empty")
		}
		if !s.Method.IsValid() {
			problems = append(problems, "delivery method is required")
		}
	}
	if !s.PaymentMethod.IsValid() {
		problems = append(problems, "payment method is required")
	}

	return problems
}

func (o *Orchestrator) submit(ctx context.Context, s *Session) (*Result, error) {
	charge, resolved, err := o.charges.Resolve(ctx, s.Info.District, s.Info.Upazila, s.Method)
	if err != nil || !resolved {
		if err == nil {
			err = fmt.Errorf("delivery charge not resolved for %s, %s", s.Info.District, s.Info.Upazila)
		}
		return nil, fmt.Errorf("failed to resolve delivery charge: %w", err)
	}

	order := o.assembleDraft(s, charge)
	if err := o.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	o.logger.Info("Order created",
		zap.String("order", order.OrderNumber),
		zap.String("payment_method", string(s.PaymentMethod)),
		zap.Float64("total", order.TotalAmount),
	)

	if s.PaymentMethod == domain.PaymentMethodOnline {
		url, err := o.gateway.PaymentURL(ctx, order.OrderNumber, order.TotalAmount)
		if err != nil {
			// The order row stays Pending; acknowledged inconsistency window.
			o.logger.Error("Payment initiation failed",
				zap.String("order", order.OrderNumber),
				zap.Error(err),
			)
			return nil, &GatewayInitError{OrderNumber: order.OrderNumber, Err: err}
		}

		o.finalize(ctx, s)
		return &Result{Order: order, RedirectURL: url}, nil
	}

	tracking, err := o.sequencer.Fulfill(ctx, order)
	if err != nil {
		return nil, err
	}

	o.finalize(ctx, s)
	return &Result{Order: order, Tracking: tracking}, nil
}

// assembleDraft builds the order payload from the session
func (o *Orchestrator) assembleDraft(s *Session, deliveryCharge float64) *domain.Order {
	now := o.now()
	subtotal := pricing.Subtotal(s.Lines)
	discount := coupon.ComputeDiscount(s.Coupon, subtotal)

	order := &domain.Order{
		ID:             uuid.New(),
		ShopperID:      s.Shopper.ID,
		DeliveryMethod: s.Method,
		Delivery:       s.Info,
		DeliveryCharge: deliveryCharge,
		TotalAmount:    pricing.ComputeTotal(subtotal, discount, deliveryCharge),
		PaymentMethod:  s.PaymentMethod,
		PaymentStatus:  domain.PaymentStatusPending,
		Status:         domain.OrderStatusPending,
		OrderDate:      now,
		DeliveryDate:   now.Add(deliveryEstimate(s.Method)),
	}
	order.OrderNumber = orderNumber(order.ID)

	if s.Coupon != nil {
		id := s.Coupon.ID
		order.CouponID = &id
	}

	order.Items = make([]domain.OrderItem, 0, len(s.Lines))
	for _, line := range s.Lines {
		order.Items = append(order.Items, domain.OrderItem{
			ID:              uuid.New(),
			OrderID:         order.ID,
			ProductID:       line.ProductID,
			VendorName:      line.SellerName,
			Quantity:        line.Quantity,
			UnitPrice:       line.OriginalPrice,
			DiscountedPrice: line.Price,
			Size:            line.Size,
			Color:           line.Color,
		})
	}

	return order
}

// finalize clears the shopper's carts after any successful path.
// Both clears are best-effort; failures are logged, never surfaced.
func (o *Orchestrator) finalize(ctx context.Context, s *Session) {
	if err := o.carts.ClearByShopper(ctx, s.Shopper.ID); err != nil {
		o.logger.Warn("Failed to clear server cart",
			zap.String("shopper", s.Shopper.ID.String()),
			zap.Error(err),
		)
	}
	if err := o.kv.Delete(KeyCart); err != nil {
		o.logger.Warn("Failed to clear local cart storage", zap.Error(err))
	}
}

func deliveryEstimate(method domain.DeliveryMethod) time.Duration {
	if method == domain.DeliveryMethodExpressCourier {
		return 24 * time.Hour
	}
	return 72 * time.Hour
}

func orderNumber(id uuid.UUID) string {
	return "HB-" + strings.ToUpper(id.String()[:8])
}
