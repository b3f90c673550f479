package order

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"time"

	"medicore-be/internal/cart"
	"medicore-be/internal/logger"
	"medicore-be/internal/metrics"
	"medicore-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartReader loads a user's cart joined with the live catalog.
type CartReader interface {
	ListItems(ctx context.Context, userID uint) ([]cart.Item, error)
}

type Service interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*Placement, error)
	ListForUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	Get(ctx context.Context, id string, userID uint, isAdmin bool) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Invoice(ctx context.Context, id string, userID uint, isAdmin bool) (*Invoice, error)
}

type Options struct {
	DecrementStock bool
}

type service struct {
	repo    Repository
	carts   CartReader
	metrics *metrics.Registry
	opts    Options
	now     func() time.Time
	entropy io.Reader
}

func NewService(repo Repository, carts CartReader, reg *metrics.Registry, opts Options) Service {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &service{
		repo:    repo,
		carts:   carts,
		metrics: reg,
		opts:    opts,
		now:     time.Now,
		entropy: rand.Reader,
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrPrescriptionRequired):
		return "prescription_required"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrCartChanged):
		return "cart_changed"
	case errors.Is(err, ErrInvalidPaymentMethod):
		return "invalid_payment_method"
	default:
		return "commit_failed"
	}
}

// PlaceOrder turns the user's cart into a confirmed order. Prices are taken
// from the catalog at this moment; the prescription reference is only
// checked for presence.
func (s *service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (placement *Placement, err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.String("payment_method", string(in.PaymentMethod)),
	)

	timer := metrics.StartTimer()
	defer func() {
		s.metrics.CheckoutDuration.Observe(timer.Duration())
		if err != nil {
			s.metrics.RejectCheckout(rejectReason(err))
			return
		}
		s.metrics.OrdersPlaced.Inc()
	}()

	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	items, err := s.carts.ListItems(ctx, in.UserID)
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, ErrCommitFailed
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	rxRequired := false
	snapshot := make([]Item, 0, len(items))
	for _, it := range items {
		if it.PrescriptionRequired {
			rxRequired = true
		}
		snapshot = append(snapshot, Item{
			MedicineID:           it.MedicineID,
			Name:                 it.Name,
			Quantity:             it.Quantity,
			Price:                it.Price,
			PrescriptionRequired: it.PrescriptionRequired,
		})
	}

	ref := strings.TrimSpace(in.PrescriptionRef)
	if rxRequired && ref == "" {
		log.Info("checkout blocked, prescription missing")
		return nil, ErrPrescriptionRequired
	}

	o := &Order{
		ID:              uuid.New().String(),
		UserID:          in.UserID,
		Items:           snapshot,
		TotalAmount:     cart.Total(items),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Status:          StatusConfirmed,
		InvoiceNumber:   invoiceNumber(s.now(), s.entropy),
	}
	if ref != "" {
		o.PrescriptionID = &ref
	}

	if err := s.repo.Commit(ctx, o, s.opts.DecrementStock); err != nil {
		return nil, err
	}

	log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Float64("total", o.TotalAmount),
		zap.Bool("rx_required", rxRequired),
	)

	return &Placement{OrderID: o.ID, Status: o.Status, Total: o.TotalAmount}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Get(ctx context.Context, id string, userID uint, isAdmin bool) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		// Hide other users' orders entirely.
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrOrderNotFound
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) Invoice(ctx context.Context, id string, userID uint, isAdmin bool) (*Invoice, error) {
	o, err := s.Get(ctx, id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	lines := make([]InvoiceLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, InvoiceLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Subtotal:  utils.RoundMoney(it.Price * float64(it.Quantity)),
		})
	}

	steps := Instructions(o.PaymentMethod, InstructionVars{
		"amount":           formatAmount(o.TotalAmount),
		"invoice_number":   o.InvoiceNumber,
		"shipping_address": o.ShippingAddress,
	})

	return &Invoice{
		InvoiceNumber:   o.InvoiceNumber,
		OrderID:         o.ID,
		Date:            o.CreatedAt,
		Status:          o.Status,
		CustomerName:    o.UserName,
		CustomerEmail:   o.UserEmail,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		Lines:           lines,
		Total:           o.TotalAmount,

		PaymentInstructions: steps,
	}, nil
}
