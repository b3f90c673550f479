package report

import "time"

type RecentOrder struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Counts struct {
	Medicines            int
	Orders               int
	Revenue              float64
	Users                int
	LowStock             int
	PendingPrescriptions int
	Expiring             int
}

type Stats struct {
	TotalMedicines       int           `json:"total_medicines"`
	TotalOrders          int           `json:"total_orders"`
	TotalUsers           int           `json:"total_users"`
	TotalRevenue         float64       `json:"total_revenue"`
	LowStock             int           `json:"low_stock"`
	PendingPrescriptions int           `json:"pending_prescriptions"`
	ExpiringMedicines    int           `json:"expiring_medicines"`
	RecentOrders         []RecentOrder `json:"recent_orders"`
}

type StockAlert struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Stock int    `json:"stock"`
}

type ExpiryAlert struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	ExpiryDate string `json:"expiry_date"`
}

type Alerts struct {
	LowStock []StockAlert  `json:"low_stock"`
	Expiring []ExpiryAlert `json:"expiring"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type InventoryRow struct {
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	Category string `json:"category"`
}

type ProductSales struct {
	Name    string  `json:"name"`
	Units   int     `json:"value"`
	Revenue float64 `json:"revenue"`
}

type Reports struct {
	OrdersByStatus []StatusCount  `json:"orders_by_status"`
	Inventory      []InventoryRow `json:"inventory"`
	SalesByProduct []ProductSales `json:"sales_by_product"`
}
