package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"medicore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Commit(ctx context.Context, o *Order, decrementStock bool) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListForUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.user_id, COALESCE(u.name, ''), COALESCE(u.email, ''),
	o.items, o.total_amount, o.shipping_address, o.payment_method,
	o.status, o.prescription_id, o.invoice_number, o.created_at, o.updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o     Order
		items []byte
		rx    sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.UserName, &o.UserEmail,
		&items, &o.TotalAmount, &o.ShippingAddress, &o.PaymentMethod,
		&o.Status, &rx, &o.InvoiceNumber, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rx.Valid {
		o.PrescriptionID = &rx.String
	}

	// A snapshot that fails to decode is shown as an empty item list.
	if err := json.Unmarshal(items, &o.Items); err != nil || o.Items == nil {
		o.Items = []Item{}
	}
	return &o, nil
}

// Commit persists a placed order in one transaction: the order row, the
// optional stock decrement and the removal of exactly the snapshotted cart.
// Nothing is kept when any step fails.
func (r *repository) Commit(ctx context.Context, o *Order, decrementStock bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Commit"),
		zap.String("order_id", o.ID),
		zap.Int("item_count", len(o.Items)),
	)

	log.Debug("starting order transaction")

	items, err := json.Marshal(o.Items)
	if err != nil {
		log.Error("failed to encode item snapshot", zap.Error(err))
		return ErrCommitFailed
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return ErrCommitFailed
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, user_id, items, total_amount, shipping_address,
			payment_method, status, prescription_id, invoice_number
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`,
		o.ID,
		o.UserID,
		items,
		o.TotalAmount,
		o.ShippingAddress,
		o.PaymentMethod,
		o.Status,
		o.PrescriptionID,
		o.InvoiceNumber,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return ErrCommitFailed
	}

	if err := deleteSnapshotCart(ctx, tx, o); err != nil {
		log.Warn("cart no longer matches snapshot", zap.Error(err))
		return err
	}

	if decrementStock {
		for i, item := range o.Items {
			res, err := tx.ExecContext(ctx, `
				UPDATE medicines
				SET stock = stock - $1, updated_at = NOW()
				WHERE id = $2 AND stock >= $1
			`, item.Quantity, item.MedicineID)
			if err != nil {
				log.Error("failed to decrement stock",
					zap.Int("item_index", i),
					zap.String("medicine_id", item.MedicineID),
					zap.Error(err),
				)
				return ErrCommitFailed
			}
			if n, _ := res.RowsAffected(); n == 0 {
				log.Info("stock exhausted during checkout", zap.String("medicine_id", item.MedicineID))
				return ErrInsufficientStock
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return ErrCommitFailed
	}

	committed = true
	log.Info("order transaction committed")
	return nil
}

// deleteSnapshotCart removes the user's cart and checks that what was removed
// is what the order was priced from.
func deleteSnapshotCart(ctx context.Context, tx *sql.Tx, o *Order) error {
	rows, err := tx.QueryContext(ctx, `
		DELETE FROM carts
		WHERE user_id = $1
		RETURNING medicine_id, quantity
	`, o.UserID)
	if err != nil {
		return ErrCommitFailed
	}
	defer rows.Close()

	removed := make(map[string]int, len(o.Items))
	for rows.Next() {
		var (
			id  string
			qty int
		)
		if err := rows.Scan(&id, &qty); err != nil {
			return ErrCommitFailed
		}
		removed[id] = qty
	}
	if err := rows.Err(); err != nil {
		return ErrCommitFailed
	}

	if len(removed) != len(o.Items) {
		return ErrCartChanged
	}
	for _, item := range o.Items {
		if qty, ok := removed[item.MedicineID]; !ok || qty != item.Quantity {
			return ErrCartChanged
		}
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	query := `SELECT ` + orderColumns + `
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	WHERE o.id = $1
	`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("layer", "repository"),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return o, nil
}

func (r *repository) ListForUser(ctx context.Context, userID uint) ([]*Order, error) {
	query := `SELECT ` + orderColumns + `
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	WHERE o.user_id = $1
	ORDER BY o.created_at DESC
	`
	return r.queryOrders(ctx, "ListForUser", query, userID)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	query := `SELECT ` + orderColumns + `
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	ORDER BY o.created_at DESC
	`
	return r.queryOrders(ctx, "ListAll", query)
}

func (r *repository) queryOrders(ctx context.Context, method, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Debug("orders fetched", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	log.Info("order status updated")
	return nil
}
