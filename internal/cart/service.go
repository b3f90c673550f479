package cart

import (
	"context"
	"errors"

	"medicore-be/internal/catalog"
	"medicore-be/internal/logger"
	"medicore-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MedicineReader is the slice of the catalog the cart needs.
type MedicineReader interface {
	Get(ctx context.Context, id string) (*catalog.Medicine, error)
}

type Service interface {
	Add(ctx context.Context, userID uint, medicineID string, quantity int) (*Entry, error)
	UpdateQuantity(ctx context.Context, userID uint, medicineID string, quantity int) error
	Remove(ctx context.Context, userID uint, medicineID string) error
	Clear(ctx context.Context, userID uint) error
	List(ctx context.Context, userID uint) (*Cart, error)
}

type service struct {
	repo      Repository
	medicines MedicineReader
}

func NewService(repo Repository, medicines MedicineReader) Service {
	return &service{repo: repo, medicines: medicines}
}

// Add puts quantity units of a medicine in the cart, merging with an
// existing entry. The merged quantity may never exceed current stock.
func (s *service) Add(ctx context.Context, userID uint, medicineID string, quantity int) (*Entry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
		zap.String("medicine_id", medicineID),
		zap.Int("quantity", quantity),
	)

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	med, err := s.medicines.Get(ctx, medicineID)
	if errors.Is(err, catalog.ErrMedicineNotFound) {
		return nil, ErrMedicineNotFound
	}
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetEntry(ctx, userID, med.ID)
	if err != nil {
		return nil, err
	}

	current := 0
	if existing != nil {
		current = existing.Quantity
	}

	// Compared as remaining room so a huge request cannot wrap around.
	if quantity > med.Stock-current {
		log.Info("add rejected by stock",
			zap.Int("current_quantity", current),
			zap.Int("stock", med.Stock),
		)
		return nil, ErrInsufficientStock
	}

	entry, err := s.repo.AddQuantity(ctx, userID, med.ID, quantity)
	if err != nil {
		return nil, err
	}

	log.Info("item added to cart", zap.Int("new_quantity", entry.Quantity))
	return entry, nil
}

// UpdateQuantity overwrites the quantity without a stock check. A quantity
// of zero or less removes the entry.
func (s *service) UpdateQuantity(ctx context.Context, userID uint, medicineID string, quantity int) error {
	if _, err := uuid.Parse(medicineID); err != nil {
		return nil
	}
	if quantity <= 0 {
		return s.repo.Remove(ctx, userID, medicineID)
	}
	return s.repo.SetQuantity(ctx, userID, medicineID, quantity)
}

func (s *service) Remove(ctx context.Context, userID uint, medicineID string) error {
	if _, err := uuid.Parse(medicineID); err != nil {
		return nil
	}
	return s.repo.Remove(ctx, userID, medicineID)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	return s.repo.Clear(ctx, userID)
}

func (s *service) List(ctx context.Context, userID uint) (*Cart, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Cart{Items: items, Total: Total(items)}, nil
}

// Total sums price times quantity over items, rounded to cents.
func Total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return utils.RoundMoney(sum)
}
