package domain

// OrderStatus represents the status of a marketplace order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return newStatus == OrderStatusProcessing ||
			newStatus == OrderStatusCancelled
	case OrderStatusProcessing:
		return newStatus == OrderStatusShipped ||
			newStatus == OrderStatusCancelled
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// PaymentMethod is the shopper-chosen payment path
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// DeliveryMethod is the shopper-chosen fulfillment path
type DeliveryMethod string

const (
	DeliveryMethodStandard       DeliveryMethod = "standard"
	DeliveryMethodExpressCourier DeliveryMethod = "express_cod_courier"
	DeliveryMethodOfficePickup   DeliveryMethod = "office_pickup"
)

// IsValid checks if the delivery method is known
func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryMethodStandard, DeliveryMethodExpressCourier, DeliveryMethodOfficePickup:
		return true
	default:
		return false
	}
}
