package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus("Refunded").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusProcessing))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusShipped))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))

	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusShipped.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPending))
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentMethodCOD.IsValid())
	assert.True(t, PaymentMethodOnline.IsValid())
	assert.False(t, PaymentMethod("card").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}

func TestDeliveryMethod_IsValid(t *testing.T) {
	assert.True(t, DeliveryMethodStandard.IsValid())
	assert.True(t, DeliveryMethodExpressCourier.IsValid())
	assert.True(t, DeliveryMethodOfficePickup.IsValid())
	assert.False(t, DeliveryMethod("drone").IsValid())
}

func TestDeliveryInformation_Missing(t *testing.T) {
	var d DeliveryInformation
	assert.Len(t, d.Missing(), 9)

	d = DeliveryInformation{
		Name: "A", Phone: "B", Email: "C", District: "Dhaka", Upazila: "Savar",
		Address: "D", City: "E", PostalCode: "F", Country: "G",
	}
	assert.Empty(t, d.Missing())

	d.Phone = ""
	d.City = ""
	assert.Equal(t, []string{"phone", "city"}, d.Missing())
}
