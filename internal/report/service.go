package report

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"time"

	"medicore-be/internal/catalog"
	"medicore-be/internal/logger"
	"medicore-be/internal/order"
	"medicore-be/internal/utils"

	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

const (
	recentOrderLimit = 10
	topProductLimit  = 5
)

// MedicineLister is the read side of the catalog used for alerts and exports.
type MedicineLister interface {
	All(ctx context.Context) ([]*catalog.Medicine, error)
	LowStock(ctx context.Context, threshold int) ([]*catalog.Medicine, error)
	ExpiringBefore(ctx context.Context, before time.Time) ([]*catalog.Medicine, error)
}

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
	Alerts(ctx context.Context) (*Alerts, error)
	Reports(ctx context.Context) (*Reports, error)
	ExportInventory(ctx context.Context, w io.Writer) error
}

type Options struct {
	LowStockThreshold  int
	ExpiryWindowMonths int
}

type service struct {
	repo      Repository
	medicines MedicineLister
	opts      Options
	now       func() time.Time
}

func NewService(repo Repository, medicines MedicineLister, opts Options) Service {
	return &service{repo: repo, medicines: medicines, opts: opts, now: time.Now}
}

func (s *service) expiryCutoff() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, s.opts.ExpiryWindowMonths, 0)
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	c, err := s.repo.Counts(ctx, s.opts.LowStockThreshold, s.expiryCutoff())
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentOrders(ctx, recentOrderLimit)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalMedicines:       c.Medicines,
		TotalOrders:          c.Orders,
		TotalUsers:           c.Users,
		TotalRevenue:         utils.RoundMoney(c.Revenue),
		LowStock:             c.LowStock,
		PendingPrescriptions: c.PendingPrescriptions,
		ExpiringMedicines:    c.Expiring,
		RecentOrders:         recent,
	}, nil
}

func (s *service) Alerts(ctx context.Context) (*Alerts, error) {
	low, err := s.medicines.LowStock(ctx, s.opts.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	expiring, err := s.medicines.ExpiringBefore(ctx, s.expiryCutoff())
	if err != nil {
		return nil, err
	}

	out := &Alerts{
		LowStock: make([]StockAlert, 0, len(low)),
		Expiring: make([]ExpiryAlert, 0, len(expiring)),
	}
	for _, m := range low {
		out.LowStock = append(out.LowStock, StockAlert{ID: m.ID, Name: m.Name, Brand: m.Brand, Stock: m.Stock})
	}
	for _, m := range expiring {
		a := ExpiryAlert{ID: m.ID, Name: m.Name, Brand: m.Brand}
		if m.ExpiryDate != nil {
			a.ExpiryDate = m.ExpiryDate.Format(catalog.DateLayout)
		}
		out.Expiring = append(out.Expiring, a)
	}
	return out, nil
}

// topSellers ranks products by units sold across order snapshots.
// Snapshots that fail to decode are skipped.
func topSellers(snapshots [][]byte, limit int) []ProductSales {
	byName := make(map[string]*ProductSales)
	for _, raw := range snapshots {
		var items []order.Item
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		for _, it := range items {
			name := it.Name
			if name == "" {
				name = "Unknown"
			}
			ps, ok := byName[name]
			if !ok {
				ps = &ProductSales{Name: name}
				byName[name] = ps
			}
			ps.Units += it.Quantity
			ps.Revenue += it.Price * float64(it.Quantity)
		}
	}

	out := make([]ProductSales, 0, len(byName))
	for _, ps := range byName {
		ps.Revenue = utils.RoundMoney(ps.Revenue)
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *service) Reports(ctx context.Context) (*Reports, error) {
	byStatus, err := s.repo.OrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}

	meds, err := s.medicines.All(ctx)
	if err != nil {
		return nil, err
	}
	inventory := make([]InventoryRow, 0, len(meds))
	for _, m := range meds {
		inventory = append(inventory, InventoryRow{Name: m.Name, Stock: m.Stock, Category: m.Category})
	}

	snapshots, err := s.repo.OrderSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	return &Reports{
		OrdersByStatus: byStatus,
		Inventory:      inventory,
		SalesByProduct: topSellers(snapshots, topProductLimit),
	}, nil
}

var inventoryHeaders = []string{
	"ID", "Name", "Brand", "Category", "Subcategory", "Price", "Stock",
	"Prescription Required", "Expiry Date", "Supplier", "Updated At",
}

// ExportInventory writes the whole catalog as an xlsx workbook.
func (s *service) ExportInventory(ctx context.Context, w io.Writer) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ExportInventory"),
	)

	meds, err := s.medicines.All(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		log.Error("failed to create sheet", zap.Error(err))
		return err
	}

	header := sheet.AddRow()
	for _, h := range inventoryHeaders {
		header.AddCell().SetValue(h)
	}

	for _, m := range meds {
		row := sheet.AddRow()
		row.AddCell().SetValue(m.ID)
		row.AddCell().SetValue(m.Name)
		row.AddCell().SetValue(m.Brand)
		row.AddCell().SetValue(m.Category)
		row.AddCell().SetValue(m.Subcategory)
		row.AddCell().SetValue(m.Price)
		row.AddCell().SetValue(m.Stock)
		row.AddCell().SetValue(m.PrescriptionRequired)
		expiry := ""
		if m.ExpiryDate != nil {
			expiry = m.ExpiryDate.Format(catalog.DateLayout)
		}
		row.AddCell().SetValue(expiry)
		row.AddCell().SetValue(m.Supplier)
		row.AddCell().SetValue(m.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		log.Error("failed to write workbook", zap.Error(err))
		return err
	}

	log.Info("inventory exported", zap.Int("rows", len(meds)))
	return nil
}
