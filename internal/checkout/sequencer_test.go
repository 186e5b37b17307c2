package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/courier"
	"github.com/hatbazar/marketplace-api/internal/domain"
)

func expressOrder() *domain.Order {
	return &domain.Order{
		ID:             uuid.New(),
		OrderNumber:    "HB-TEST0001",
		DeliveryMethod: domain.DeliveryMethodExpressCourier,
		Status:         domain.OrderStatusPending,
	}
}

func TestFulfill_NonCourierMethod(t *testing.T) {
	orders := &mockOrderStore{}
	c := &mockCourier{}
	q := NewSequencer(orders, c, NewMemoryStore(), zap.NewNop())

	order := expressOrder()
	order.DeliveryMethod = domain.DeliveryMethodStandard

	note, err := q.Fulfill(context.Background(), order)

	require.NoError(t, err)
	assert.Nil(t, note)
	assert.Equal(t, 0, c.Calls)
}

func TestFulfill_Success(t *testing.T) {
	orders := &mockOrderStore{}
	c := &mockCourier{Parcel: &courier.Parcel{
		ConsignmentID: "CN-778",
		TrackingCode:  "TRK-778",
		TrackingURL:   "https://courier.example/tracking/TRK-778",
	}}
	kv := NewMemoryStore()
	q := NewSequencer(orders, c, kv, zap.NewNop())

	note, err := q.Fulfill(context.Background(), expressOrder())

	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "HB-TEST0001", note.OrderID)
	require.NotNil(t, note.ParcelID)
	assert.Equal(t, "CN-778", *note.ParcelID)
	require.NotNil(t, note.TrackingID)
	assert.Equal(t, "TRK-778", *note.TrackingID)
	assert.True(t, orders.TrackingSet)

	// The note is durably written for the next app session
	raw, ok := kv.Get(KeyLastOrderTracking)
	require.True(t, ok)
	var stored domain.TrackingNote
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, *note, stored)
}

func TestFulfill_TrackingPersistFailureKeepsSuccess(t *testing.T) {
	orders := &mockOrderStore{TrackingErr: errors.New("db timeout")}
	c := &mockCourier{Parcel: &courier.Parcel{ConsignmentID: "CN-1", TrackingCode: "TRK-1"}}
	q := NewSequencer(orders, c, NewMemoryStore(), zap.NewNop())

	note, err := q.Fulfill(context.Background(), expressOrder())

	require.NoError(t, err)
	assert.NotNil(t, note)
}

func TestFulfill_CourierFailureCancelsOrder(t *testing.T) {
	orders := &mockOrderStore{}
	c := &mockCourier{Err: errors.New("courier unreachable")}
	kv := NewMemoryStore()
	q := NewSequencer(orders, c, kv, zap.NewNop())

	note, err := q.Fulfill(context.Background(), expressOrder())

	assert.Nil(t, note)
	var fErr *FulfillmentError
	require.ErrorAs(t, err, &fErr)
	assert.True(t, fErr.Cancelled)
	assert.Equal(t, []domain.OrderStatus{domain.OrderStatusCancelled}, orders.StatusUpdates)

	// A clean rollback leaves no manual-intervention note
	_, ok := kv.Get(KeyLastOrderTracking)
	assert.False(t, ok)
}

func TestFulfill_CancelFailureWritesNote(t *testing.T) {
	orders := &mockOrderStore{StatusErr: errors.New("db unavailable")}
	c := &mockCourier{Err: errors.New("courier unreachable")}
	kv := NewMemoryStore()
	q := NewSequencer(orders, c, kv, zap.NewNop())

	_, err := q.Fulfill(context.Background(), expressOrder())

	var fErr *FulfillmentError
	require.ErrorAs(t, err, &fErr)
	assert.False(t, fErr.Cancelled)

	raw, ok := kv.Get(KeyLastOrderTracking)
	require.True(t, ok)
	var note domain.TrackingNote
	require.NoError(t, json.Unmarshal([]byte(raw), &note))
	assert.Equal(t, "HB-TEST0001", note.OrderID)
	assert.Nil(t, note.ParcelID)
	assert.Nil(t, note.TrackingID)
	assert.Contains(t, note.Note, "manual intervention")
}

func TestFulfill_CancelBlockedByTerminalStatus(t *testing.T) {
	orders := &mockOrderStore{}
	c := &mockCourier{Err: errors.New("courier unreachable")}
	q := NewSequencer(orders, c, NewMemoryStore(), zap.NewNop())

	order := expressOrder()
	order.Status = domain.OrderStatusDelivered

	_, err := q.Fulfill(context.Background(), order)

	var fErr *FulfillmentError
	require.ErrorAs(t, err, &fErr)
	assert.False(t, fErr.Cancelled)
	assert.Empty(t, orders.StatusUpdates)
}
