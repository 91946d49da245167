package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrValidation            = errors.New("validation failed")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrUserValidationFailed  = errors.New("user not found or unauthorized")
	ErrProductNotFound       = errors.New("product not found")
	ErrProductUnavailable    = errors.New("product validation failed")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrPersistence           = errors.New("persistence failure")
)

// ProductError ties a catalog failure to the offending product.
type ProductError struct {
	ProductID   string
	ProductName string
	Err         error
}

func (e *ProductError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientInventory):
		name := e.ProductName
		if name == "" {
			name = e.ProductID
		}
		return fmt.Sprintf("insufficient inventory for product: %s", name)
	case errors.Is(e.Err, ErrProductNotFound):
		return fmt.Sprintf("product %s not found", e.ProductID)
	default:
		return fmt.Sprintf("failed to validate product: %s", e.ProductID)
	}
}

func (e *ProductError) Unwrap() error { return e.Err }

// TransitionError reports a rejected status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	if e.To == "cancelled" {
		return fmt.Sprintf("cannot cancel order with status: %s", e.From)
	}
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Persistence wraps a storage failure so callers can report it generically.
func Persistence(op string, err error) error {
	if err == nil || errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
