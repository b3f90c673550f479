package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is recorded on the order. Nothing is charged.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCOD          PaymentMethod = "cod"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCreditCard, PaymentBankTransfer, PaymentCOD:
		return true
	}
	return false
}

// Item is the per-line snapshot stored with the order. Later catalog edits
// never change it.
type Item struct {
	MedicineID           string  `json:"medicine_id"`
	Name                 string  `json:"name"`
	Quantity             int     `json:"quantity"`
	Price                float64 `json:"price"`
	PrescriptionRequired bool    `json:"is_prescription_required"`
}

type Order struct {
	ID              string        `json:"id"`
	UserID          uint          `json:"user_id"`
	UserName        string        `json:"user_name,omitempty"`
	UserEmail       string        `json:"user_email,omitempty"`
	Items           []Item        `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Status          Status        `json:"status"`
	PrescriptionID  *string       `json:"prescription_id"`
	InvoiceNumber   string        `json:"invoice_number"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type PlaceOrderInput struct {
	UserID          uint
	PaymentMethod   PaymentMethod
	ShippingAddress string
	PrescriptionRef string
}

type Placement struct {
	OrderID string  `json:"order_id"`
	Status  Status  `json:"status"`
	Total   float64 `json:"total"`
}

type InvoiceLine struct {
	Name      string  `json:"medicine_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type Invoice struct {
	InvoiceNumber   string        `json:"invoice_number"`
	OrderID         string        `json:"order_id"`
	Date            time.Time     `json:"date"`
	Status          Status        `json:"status"`
	CustomerName    string        `json:"user_name"`
	CustomerEmail   string        `json:"user_email"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Lines           []InvoiceLine `json:"items"`
	Total           float64       `json:"total"`

	PaymentInstructions []string `json:"payment_instructions"`
}
