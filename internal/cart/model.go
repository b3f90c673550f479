package cart

import "time"

// Entry is one stored cart row, keyed by (user, medicine).
type Entry struct {
	UserID     uint      `json:"user_id"`
	MedicineID string    `json:"medicine_id"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Item is an entry joined with live catalog fields.
type Item struct {
	MedicineID           string  `json:"medicine_id"`
	Quantity             int     `json:"quantity"`
	Name                 string  `json:"name"`
	Brand                string  `json:"brand"`
	Price                float64 `json:"price"`
	ImageURL             string  `json:"image_url"`
	PrescriptionRequired bool    `json:"is_prescription_required"`
	Stock                int     `json:"stock"`
	Subtotal             float64 `json:"subtotal"`
}

type Cart struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}
