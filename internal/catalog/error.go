package catalog

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidExpiryDate = errors.New("expiry_date must be YYYY-MM-DD")
	ErrNegativeValue     = errors.New("price and stock must not be negative")

	// -- Resource State --
	ErrMedicineNotFound = errors.New("medicine not found")
)
