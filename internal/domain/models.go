package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shopper represents a registered marketplace customer
type Shopper struct {
	ID         uuid.UUID
	Name       string
	Phone      string
	Email      string
	District   string
	Upazila    string
	Address    string
	City       string
	PostalCode string
	Country    string
	TokenHash  string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartLine is one product/variant entry in a shopper's cart
type CartLine struct {
	ID                string   `json:"id"`
	SellerName        string   `json:"seller_name"`
	SellerVerified    bool     `json:"seller_verified"`
	ProductID         string   `json:"product_id"`
	ProductName       string   `json:"product_name"`
	Image             string   `json:"image,omitempty"`
	Size              string   `json:"size,omitempty"`
	Color             string   `json:"color,omitempty"`
	Price             float64  `json:"price"`
	OriginalPrice     float64  `json:"original_price"`
	Quantity          int      `json:"quantity"`
	ShippingCost      *float64 `json:"shipping_cost,omitempty"`
	FreeShippingAbove *float64 `json:"free_shipping_above,omitempty"`
	DiscountPercent   *float64 `json:"discount_percent,omitempty"`
}

// Coupon is a promotional code with a validity window and minimum order amount
type Coupon struct {
	ID                 uuid.UUID
	Code               string
	Value              float64
	Type               string
	Title              string
	MinimumOrderAmount float64
	Status             string
	StartDate          time.Time
	EndingDate         time.Time
	ShortDescription   string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AppliedCoupon is the checkout-session view of a successfully validated coupon
type AppliedCoupon struct {
	ID                 uuid.UUID `json:"_id"`
	Code               string    `json:"code"`
	Value              float64   `json:"value"`
	Type               string    `json:"type"`
	Title              string    `json:"title"`
	MinimumOrderAmount float64   `json:"minimum_order_amount"`
}

// DeliveryInformation holds the shopper-entered shipping fields
type DeliveryInformation struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Missing returns the names of required fields that are still empty
func (d DeliveryInformation) Missing() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"name", d.Name},
		{"phone", d.Phone},
		{"email", d.Email},
		{"district", d.District},
		{"upazila", d.Upazila},
		{"address", d.Address},
		{"city", d.City},
		{"postal code", d.PostalCode},
		{"country", d.Country},
	}
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// FromShopper seeds delivery information from a saved shopper profile
func (d *DeliveryInformation) FromShopper(s *Shopper) {
	d.Name = s.Name
	d.Phone = s.Phone
	d.Email = s.Email
	d.District = s.District
	d.Upazila = s.Upazila
	d.Address = s.Address
	d.City = s.City
	d.PostalCode = s.PostalCode
	d.Country = s.Country
}

// Order represents a placed marketplace order
type Order struct {
	ID             uuid.UUID
	OrderNumber    string
	ShopperID      uuid.UUID
	DeliveryMethod DeliveryMethod
	Delivery       DeliveryInformation
	DeliveryCharge float64
	TotalAmount    float64
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	Status         OrderStatus
	OrderDate      time.Time
	DeliveryDate   time.Time
	Items          []OrderItem
	CouponID       *uuid.UUID
	ConsignmentID  *string
	TrackingCode   *string
	TrackingURL    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem is one line of a placed order
type OrderItem struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ProductID       string
	VendorName      string
	Quantity        int
	UnitPrice       float64
	DiscountedPrice float64
	Size            string
	Color           string
	CreatedAt       time.Time
}

// TrackingNote is the client-handoff record written after fulfillment,
// stored under the lastOrderTracking key
type TrackingNote struct {
	OrderID     string  `json:"orderId"`
	ParcelID    *string `json:"parcelId"`
	TrackingID  *string `json:"trackingId"`
	TrackingURL *string `json:"trackingUrl,omitempty"`
	Note        string  `json:"note,omitempty"`
}
