package errors

import (
	"fmt"

	"github.com/hatbazar/marketplace-api/internal/domain"
)

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrUnauthorized indicates a missing or invalid credential
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrValidation carries the combined, user-facing validation message
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrInvalidStateTransition indicates a disallowed order status change
type ErrInvalidStateTransition struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}
