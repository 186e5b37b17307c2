package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/courier"
	"github.com/hatbazar/marketplace-api/internal/domain"
	pkgerrors "github.com/hatbazar/marketplace-api/pkg/errors"
)

// Courier registers a parcel for an already-created order
type Courier interface {
	Register(ctx context.Context, order *domain.Order) (*courier.Parcel, error)
}

// Sequencer runs the post-order-creation fulfillment phase. For the express
// courier method it performs the dependent parcel registration; on failure it
// compensates by cancelling the order, and if even that fails it leaves a
// durable note for manual intervention. Non-courier methods succeed
// immediately after order creation.
type Sequencer struct {
	orders  OrderStore
	courier Courier
	kv      KVStore
	logger  *zap.Logger
}

// NewSequencer creates a new fulfillment sequencer
func NewSequencer(orders OrderStore, c Courier, kv KVStore, logger *zap.Logger) *Sequencer {
	return &Sequencer{
		orders:  orders,
		courier: c,
		kv:      kv,
		logger:  logger,
	}
}

// Fulfill completes fulfillment for a freshly created order. The returned
// tracking note is nil for delivery methods without a courier leg.
func (q *Sequencer) Fulfill(ctx context.Context, order *domain.Order) (*domain.TrackingNote, error) {
	if order.DeliveryMethod != domain.DeliveryMethodExpressCourier {
		return nil, nil
	}

	parcel, err := q.courier.Register(ctx, order)
	if err != nil {
		q.logger.Error("Courier registration failed",
			zap.String("order", order.OrderNumber),
			zap.Error(err),
		)
		return nil, q.compensate(ctx, order, err)
	}

	note := &domain.TrackingNote{
		OrderID:     order.OrderNumber,
		ParcelID:    &parcel.ConsignmentID,
		TrackingID:  &parcel.TrackingCode,
		TrackingURL: &parcel.TrackingURL,
	}
	q.writeNote(note)

	if err := q.orders.UpdateTracking(ctx, order.ID, parcel.ConsignmentID, parcel.TrackingCode, parcel.TrackingURL); err != nil {
		// The parcel exists and the note is written; keep the success path.
		q.logger.Warn("Failed to persist tracking on order",
			zap.String("order", order.OrderNumber),
			zap.Error(err),
		)
	}

	return note, nil
}

// compensate rolls the order back to Cancelled after a courier failure. The
// rollback only fires here, never speculatively.
func (q *Sequencer) compensate(ctx context.Context, order *domain.Order, cause error) error {
	cancelErr := q.cancelOrder(ctx, order)

	cancelled := true
	if cancelErr != nil {
		cancelled = false
		q.logger.Error("Failed to cancel order after courier failure",
			zap.String("order", order.OrderNumber),
			zap.Error(cancelErr),
		)
		q.writeNote(&domain.TrackingNote{
			OrderID:    order.OrderNumber,
			ParcelID:   nil,
			TrackingID: nil,
			Note:       fmt.Sprintf("courier registration and cancellation both failed; manual intervention required for order %s", order.OrderNumber),
		})
	}

	return &FulfillmentError{
		OrderNumber: order.OrderNumber,
		Cancelled:   cancelled,
		Err:         cause,
	}
}

func (q *Sequencer) cancelOrder(ctx context.Context, order *domain.Order) error {
	if !order.Status.CanTransitionTo(domain.OrderStatusCancelled) {
		return &pkgerrors.ErrInvalidStateTransition{From: order.Status, To: domain.OrderStatusCancelled}
	}
	return q.orders.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled)
}

// writeNote persists a tracking note under the lastOrderTracking key.
// Best-effort: failures are logged, never surfaced.
func (q *Sequencer) writeNote(note *domain.TrackingNote) {
	data, err := json.Marshal(note)
	if err == nil {
		err = q.kv.Set(KeyLastOrderTracking, string(data))
	}
	if err != nil {
		q.logger.Warn("Failed to write tracking note",
			zap.String("order", note.OrderID),
			zap.Error(err),
		)
	}
}
