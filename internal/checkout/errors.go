package checkout

import (
	"errors"
	"fmt"
)

// ErrSubmitInProgress rejects re-entrant submission attempts
var ErrSubmitInProgress = errors.New("submission already in progress")

// ErrRetryNotAllowed is returned when retry is requested outside the
// terminal failed state
var ErrRetryNotAllowed = errors.New("retry is only available after a failed submission")

// GatewayInitError reports a payment-gateway initiation failure after the
// order row was already created. The order stays Pending; the message makes
// the existing order explicit so the shopper is not misled.
type GatewayInitError struct {
	OrderNumber string
	Err         error
}

func (e *GatewayInitError) Error() string {
	return fmt.Sprintf("order %s was placed but the payment gateway could not be reached; please retry payment or contact support", e.OrderNumber)
}

func (e *GatewayInitError) Unwrap() error { return e.Err }

// FulfillmentError reports a courier-registration failure after order
// creation. Cancelled tells whether the compensating status rollback
// succeeded; when it did not, manual intervention is required.
type FulfillmentError struct {
	OrderNumber string
	Cancelled   bool
	Err         error
}

func (e *FulfillmentError) Error() string {
	if e.Cancelled {
		return fmt.Sprintf("order %s was placed but parcel registration failed; the order has been cancelled", e.OrderNumber)
	}
	return fmt.Sprintf("order %s was placed but parcel registration failed and could not be cancelled; support has been notified", e.OrderNumber)
}

func (e *FulfillmentError) Unwrap() error { return e.Err }
