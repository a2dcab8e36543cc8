package order

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEmptyItems      = errors.New("order must contain at least one item")
	ErrAddressRequired = errors.New("address is required")
	ErrAddressNotFound = errors.New("address not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrProductNotFound = errors.New("product not found")

	ErrInsufficientStock = errors.New("insufficient stock")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidPayment    = errors.New("invalid payment type")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrStatusChanged     = errors.New("order status changed concurrently")
	ErrUnauthorized      = errors.New("unauthorized")

	ErrMissingPaymentFields = errors.New("razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
	ErrOrderNotPayable      = errors.New("order cannot be paid")
	ErrGatewayOrderMismatch = errors.New("gateway order does not belong to this order")
)

// InsufficientStockError names the product that cannot cover the requested quantity.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID.String()
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
