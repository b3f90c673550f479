package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"medicore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Medicine, error)
	List(ctx context.Context, params ListParams) ([]*Medicine, int, error)
	Categories(ctx context.Context) (*Categories, error)
	Popular(ctx context.Context, limit int) ([]*Medicine, error)
	All(ctx context.Context) ([]*Medicine, error)
	LowStock(ctx context.Context, threshold int) ([]*Medicine, error)
	ExpiringBefore(ctx context.Context, before time.Time) ([]*Medicine, error)

	Create(ctx context.Context, id string, params WriteParams) (*Medicine, error)
	Update(ctx context.Context, id string, params WriteParams) (*Medicine, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const medicineColumns = `
	m.id, m.name, m.brand, m.category, m.subcategory,
	m.price, m.stock, m.is_prescription_required, m.expiry_date,
	m.supplier, m.description, m.dosage, m.side_effects, m.interactions,
	m.image_url, m.created_at, m.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMedicine(row scanner) (*Medicine, error) {
	var (
		m      Medicine
		expiry sql.NullTime
	)
	err := row.Scan(
		&m.ID, &m.Name, &m.Brand, &m.Category, &m.Subcategory,
		&m.Price, &m.Stock, &m.PrescriptionRequired, &expiry,
		&m.Supplier, &m.Description, &m.Dosage,
		pq.Array(&m.SideEffects), pq.Array(&m.Interactions),
		&m.ImageURL, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if expiry.Valid {
		t := expiry.Time
		m.ExpiryDate = &t
	}
	if m.SideEffects == nil {
		m.SideEffects = []string{}
	}
	if m.Interactions == nil {
		m.Interactions = []string{}
	}
	return &m, nil
}

func (r *repository) queryMedicines(ctx context.Context, log *zap.Logger, query string, args ...any) ([]*Medicine, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query medicines", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	medicines := make([]*Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			log.Error("failed to scan medicine", zap.Error(err))
			return nil, err
		}
		medicines = append(medicines, m)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}
	return medicines, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Medicine, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+medicineColumns+` FROM medicines m WHERE m.id = $1`,
		id,
	)
	m, err := scanMedicine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMedicineNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get medicine",
			zap.String("layer", "repository"),
			zap.String("medicine_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return m, nil
}

func buildWhere(f Filter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}

	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("m.category = $%d", len(args)))
	}
	if f.Subcategory != "" {
		args = append(args, f.Subcategory)
		where = append(where, fmt.Sprintf("m.subcategory = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(m.name ILIKE $%d OR m.brand ILIKE $%d OR m.description ILIKE $%d)", n, n, n,
		))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		where = append(where, fmt.Sprintf("m.price >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		where = append(where, fmt.Sprintf("m.price <= $%d", len(args)))
	}

	return strings.Join(where, " AND "), args
}

func orderClause(field SortField, asc bool) string {
	col := "m.name"
	switch field {
	case SortByPrice:
		col = "m.price"
	case SortByStock:
		col = "m.stock"
	case SortByCreatedAt:
		col = "m.created_at"
	}

	dir := "DESC"
	if asc {
		dir = "ASC"
	}
	// id keeps paging stable when the sort column has ties
	return col + " " + dir + ", m.id ASC"
}

func (r *repository) List(ctx context.Context, params ListParams) ([]*Medicine, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.Int("page", params.Page),
		zap.Int("limit", params.Limit),
	)

	where, args := buildWhere(params.Filter)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM medicines m WHERE `+where, args...,
	).Scan(&total); err != nil {
		log.Error("failed to count medicines", zap.Error(err))
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	query := `SELECT ` + medicineColumns + ` FROM medicines m WHERE ` + where +
		` ORDER BY ` + orderClause(params.SortBy, params.SortAsc) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.Limit, offset)

	medicines, err := r.queryMedicines(ctx, log, query, args...)
	if err != nil {
		return nil, 0, err
	}

	log.Debug("medicines listed", zap.Int("count", len(medicines)), zap.Int("total", total))
	return medicines, total, nil
}

func (r *repository) Categories(ctx context.Context) (*Categories, error) {
	out := &Categories{Categories: []string{}, Subcategories: []string{}}

	load := func(query string, dst *[]string) error {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return err
			}
			*dst = append(*dst, v)
		}
		return rows.Err()
	}

	if err := load(`SELECT DISTINCT category FROM medicines WHERE category <> '' ORDER BY category`, &out.Categories); err != nil {
		logger.FromCtx(ctx).Error("failed to load categories", zap.Error(err))
		return nil, err
	}
	if err := load(`SELECT DISTINCT subcategory FROM medicines WHERE subcategory <> '' ORDER BY subcategory`, &out.Subcategories); err != nil {
		logger.FromCtx(ctx).Error("failed to load subcategories", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// Popular ranks by units ordered across all order snapshots, then by name.
func (r *repository) Popular(ctx context.Context, limit int) ([]*Medicine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Popular"),
	)

	query := `
	SELECT ` + medicineColumns + `
	FROM medicines m
	LEFT JOIN (
		SELECT item->>'medicine_id' AS medicine_id,
		       SUM((item->>'quantity')::int) AS units
		FROM orders o, jsonb_array_elements(o.items) AS item
		WHERE o.status <> 'cancelled'
		GROUP BY 1
	) sales ON sales.medicine_id = m.id::text
	ORDER BY COALESCE(sales.units, 0) DESC, m.name ASC
	LIMIT $1`

	return r.queryMedicines(ctx, log, query, limit)
}

func (r *repository) All(ctx context.Context) ([]*Medicine, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"), zap.String("method", "All"))
	return r.queryMedicines(ctx, log,
		`SELECT `+medicineColumns+` FROM medicines m ORDER BY m.category, m.name`,
	)
}

func (r *repository) LowStock(ctx context.Context, threshold int) ([]*Medicine, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"), zap.String("method", "LowStock"))
	return r.queryMedicines(ctx, log,
		`SELECT `+medicineColumns+` FROM medicines m WHERE m.stock <= $1 ORDER BY m.stock ASC, m.name`,
		threshold,
	)
}

func (r *repository) ExpiringBefore(ctx context.Context, before time.Time) ([]*Medicine, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"), zap.String("method", "ExpiringBefore"))
	return r.queryMedicines(ctx, log,
		`SELECT `+medicineColumns+` FROM medicines m
		WHERE m.expiry_date IS NOT NULL AND m.expiry_date <= $1
		ORDER BY m.expiry_date ASC`,
		before,
	)
}

func writeArgs(p WriteParams) []any {
	var expiry any
	if p.ExpiryDate != nil {
		expiry = *p.ExpiryDate
	}
	return []any{
		p.Name, p.Brand, p.Category, p.Subcategory,
		p.Price, p.Stock, p.PrescriptionRequired, expiry,
		p.Supplier, p.Description, p.Dosage,
		pq.Array(p.SideEffects), pq.Array(p.Interactions), p.ImageURL,
	}
}

func (r *repository) Create(ctx context.Context, id string, params WriteParams) (*Medicine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("medicine_id", id),
	)

	query := `
	INSERT INTO medicines AS m (
		id, name, brand, category, subcategory,
		price, stock, is_prescription_required, expiry_date,
		supplier, description, dosage, side_effects, interactions, image_url
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING ` + medicineColumns

	args := append([]any{id}, writeArgs(params)...)

	m, err := scanMedicine(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Error("failed to insert medicine", zap.Error(err))
		return nil, err
	}

	log.Info("medicine created", zap.String("name", m.Name))
	return m, nil
}

func (r *repository) Update(ctx context.Context, id string, params WriteParams) (*Medicine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("medicine_id", id),
	)

	query := `
	UPDATE medicines AS m SET
		name = $1, brand = $2, category = $3, subcategory = $4,
		price = $5, stock = $6, is_prescription_required = $7, expiry_date = $8,
		supplier = $9, description = $10, dosage = $11,
		side_effects = $12, interactions = $13, image_url = $14,
		updated_at = NOW()
	WHERE m.id = $15
	RETURNING ` + medicineColumns

	args := append(writeArgs(params), id)

	m, err := scanMedicine(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMedicineNotFound
	}
	if err != nil {
		log.Error("failed to update medicine", zap.Error(err))
		return nil, err
	}

	log.Info("medicine updated", zap.Int("stock", m.Stock))
	return m, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete medicine",
			zap.String("medicine_id", id),
			zap.Error(err),
		)
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMedicineNotFound
	}
	return nil
}
