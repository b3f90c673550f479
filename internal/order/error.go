package order

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// -- Checkout --
	ErrEmptyCart            = errors.New("cart empty")
	ErrPrescriptionRequired = errors.New("prescription required for this order")
	ErrInsufficientStock    = errors.New("insufficient stock available")
	ErrCartChanged          = errors.New("cart changed during checkout")
	ErrCommitFailed         = errors.New("failed to commit order")

	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")
)
