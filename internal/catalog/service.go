package catalog

import (
	"context"

	"medicore-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultLimit   = 20
	maxLimit       = 100
	// maxPage keeps (page-1)*limit well inside an int4 OFFSET.
	maxPage        = 1_000_000
	defaultPopular = 8
)

type Service interface {
	Get(ctx context.Context, id string) (*Medicine, error)
	Search(ctx context.Context, params ListParams) (*Page, error)
	Categories(ctx context.Context) (*Categories, error)
	Popular(ctx context.Context, limit int) ([]*Medicine, error)
	Create(ctx context.Context, input MedicineInput) (*Medicine, error)
	Update(ctx context.Context, id string, input MedicineInput) (*Medicine, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validID filters out ids postgres would reject as malformed uuids.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *service) Get(ctx context.Context, id string) (*Medicine, error) {
	if !validID(id) {
		return nil, ErrMedicineNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func normalizePaging(p *ListParams) {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	switch p.SortBy {
	case SortByName, SortByPrice, SortByStock, SortByCreatedAt:
	default:
		p.SortBy = SortByName
		p.SortAsc = true
	}
}

func (s *service) Search(ctx context.Context, params ListParams) (*Page, error) {
	normalizePaging(&params)

	medicines, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pages := (total + params.Limit - 1) / params.Limit
	return &Page{
		Medicines: medicines,
		Total:     total,
		Page:      params.Page,
		Pages:     pages,
	}, nil
}

func (s *service) Categories(ctx context.Context) (*Categories, error) {
	return s.repo.Categories(ctx)
}

func (s *service) Popular(ctx context.Context, limit int) ([]*Medicine, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultPopular
	}
	return s.repo.Popular(ctx, limit)
}

func (s *service) Create(ctx context.Context, input MedicineInput) (*Medicine, error) {
	params, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	m, err := s.repo.Create(ctx, id, params)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("medicine added",
		zap.String("layer", "service"),
		zap.String("medicine_id", id),
		zap.Bool("rx", m.PrescriptionRequired),
	)
	return m, nil
}

func (s *service) Update(ctx context.Context, id string, input MedicineInput) (*Medicine, error) {
	if !validID(id) {
		return nil, ErrMedicineNotFound
	}
	params, err := input.Normalize()
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrMedicineNotFound
	}
	return s.repo.Delete(ctx, id)
}
