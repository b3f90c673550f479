package cart

import (
	"context"
	"database/sql"
	"errors"

	"medicore-be/internal/logger"
	"medicore-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	GetEntry(ctx context.Context, userID uint, medicineID string) (*Entry, error)
	AddQuantity(ctx context.Context, userID uint, medicineID string, quantity int) (*Entry, error)
	SetQuantity(ctx context.Context, userID uint, medicineID string, quantity int) error
	Remove(ctx context.Context, userID uint, medicineID string) error
	Clear(ctx context.Context, userID uint) error
	ListItems(ctx context.Context, userID uint) ([]Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEntry(ctx context.Context, userID uint, medicineID string) (*Entry, error) {
	query := `
	SELECT user_id, medicine_id, quantity, created_at, updated_at
	FROM carts
	WHERE user_id = $1 AND medicine_id = $2
	`

	var e Entry
	err := r.db.QueryRowContext(ctx, query, userID, medicineID).Scan(
		&e.UserID, &e.MedicineID, &e.Quantity, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get cart entry",
			zap.String("layer", "repository"),
			zap.String("medicine_id", medicineID),
			zap.Error(err),
		)
		return nil, ErrFailedGetCartItem
	}
	return &e, nil
}

// AddQuantity creates the entry or increments it. Stock is re-checked inside
// the statement, so concurrent adds cannot jointly exceed it; a request that
// would is reported as ErrInsufficientStock.
func (r *repository) AddQuantity(ctx context.Context, userID uint, medicineID string, quantity int) (*Entry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddQuantity"),
		zap.String("medicine_id", medicineID),
		zap.Int("quantity", quantity),
	)

	log.Debug("start upsert cart entry")

	query := `
	INSERT INTO carts (user_id, medicine_id, quantity)
	SELECT $1, m.id, $3
	FROM medicines m
	WHERE m.id = $2 AND m.stock >= $3
	ON CONFLICT (user_id, medicine_id) DO UPDATE
	SET quantity = carts.quantity + EXCLUDED.quantity,
	    updated_at = NOW()
	WHERE carts.quantity + EXCLUDED.quantity <= (
		SELECT stock FROM medicines WHERE id = EXCLUDED.medicine_id
	)
	RETURNING user_id, medicine_id, quantity, created_at, updated_at
	`

	var e Entry
	err := r.db.QueryRowContext(ctx, query, userID, medicineID, quantity).Scan(
		&e.UserID, &e.MedicineID, &e.Quantity, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("stock guard rejected cart upsert")
		return nil, ErrInsufficientStock
	}
	if err != nil {
		log.Error("failed to upsert cart entry", zap.Error(err))
		return nil, ErrFailedUpdateCart
	}

	log.Info("success upsert cart entry", zap.Int("new_quantity", e.Quantity))
	return &e, nil
}

// SetQuantity overwrites the stored quantity without consulting stock.
// Updating an entry that does not exist is a no-op.
func (r *repository) SetQuantity(ctx context.Context, userID uint, medicineID string, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND medicine_id = $3
	`, quantity, userID, medicineID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to set cart quantity",
			zap.String("layer", "repository"),
			zap.String("medicine_id", medicineID),
			zap.Error(err),
		)
		return ErrFailedUpdateCart
	}

	if n, _ := res.RowsAffected(); n == 0 {
		logger.FromCtx(ctx).Debug("set quantity on missing cart entry",
			zap.String("medicine_id", medicineID),
		)
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, userID uint, medicineID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE user_id = $1 AND medicine_id = $2
	`, userID, medicineID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to remove cart entry",
			zap.String("layer", "repository"),
			zap.String("medicine_id", medicineID),
			zap.Error(err),
		)
		return ErrFailedRemoveCart
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, userID uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return ErrFailedClearCart
	}

	n, _ := res.RowsAffected()
	logger.FromCtx(ctx).Debug("cart cleared", zap.Int64("removed", n))
	return nil
}

// ListItems joins entries with the live catalog, oldest entry first.
func (r *repository) ListItems(ctx context.Context, userID uint) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListItems"),
	)

	query := `
	SELECT
		c.medicine_id,
		c.quantity,
		m.name,
		m.brand,
		m.price,
		m.image_url,
		m.is_prescription_required,
		m.stock
	FROM carts c
	JOIN medicines m ON m.id = c.medicine_id
	WHERE c.user_id = $1
	ORDER BY c.created_at ASC, c.medicine_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.MedicineID,
			&it.Quantity,
			&it.Name,
			&it.Brand,
			&it.Price,
			&it.ImageURL,
			&it.PrescriptionRequired,
			&it.Stock,
		); err != nil {
			log.Error("failed to scan cart item", zap.Error(err))
			return nil, err
		}
		it.Subtotal = utils.RoundMoney(it.Price * float64(it.Quantity))
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Debug("cart items loaded", zap.Int("count", len(items)))
	return items, nil
}
