package catalog

import "time"

const DateLayout = "2006-01-02"

type Medicine struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Brand                string     `json:"brand"`
	Category             string     `json:"category"`
	Subcategory          string     `json:"subcategory"`
	Price                float64    `json:"price"`
	Stock                int        `json:"stock"`
	PrescriptionRequired bool       `json:"is_prescription_required"`
	ExpiryDate           *time.Time `json:"expiry_date,omitempty"`
	Supplier             string     `json:"supplier"`
	Description          string     `json:"description"`
	Dosage               string     `json:"dosage"`
	SideEffects          []string   `json:"side_effects"`
	Interactions         []string   `json:"interactions"`
	ImageURL             string     `json:"image_url"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type Filter struct {
	Category    string
	Subcategory string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
}

type SortField string

const (
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByStock     SortField = "stock"
	SortByCreatedAt SortField = "created_at"
)

type ListParams struct {
	Filter  Filter
	SortBy  SortField
	SortAsc bool
	Page    int
	Limit   int
}

type Page struct {
	Medicines []*Medicine `json:"medicines"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	Pages     int         `json:"pages"`
}

type Categories struct {
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
}

// WriteParams is the normalized admin payload for create and update.
type WriteParams struct {
	Name                 string
	Brand                string
	Category             string
	Subcategory          string
	Price                float64
	Stock                int
	PrescriptionRequired bool
	ExpiryDate           *time.Time
	Supplier             string
	Description          string
	Dosage               string
	SideEffects          []string
	Interactions         []string
	ImageURL             string
}
