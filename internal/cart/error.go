package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// -- Resource State --
	ErrMedicineNotFound  = errors.New("medicine not found")
	ErrInsufficientStock = errors.New("insufficient stock available")

	// -- Database & Operation Failures --
	ErrFailedGetCartItem = errors.New("failed to get cart item")
	ErrFailedUpdateCart  = errors.New("failed to update cart item")
	ErrFailedRemoveCart  = errors.New("failed to remove cart item")
	ErrFailedClearCart   = errors.New("failed to clear cart")
)
