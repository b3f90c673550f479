package report

import (
	"context"
	"database/sql"
	"time"

	"medicore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Counts(ctx context.Context, lowStockThreshold int, expiringBefore time.Time) (*Counts, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
	OrdersByStatus(ctx context.Context) ([]StatusCount, error)
	OrderSnapshots(ctx context.Context) ([][]byte, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context, lowStockThreshold int, expiringBefore time.Time) (*Counts, error) {
	query := `
	SELECT
		(SELECT COUNT(*) FROM medicines),
		(SELECT COUNT(*) FROM orders),
		(SELECT COALESCE(SUM(total_amount), 0) FROM orders),
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM medicines WHERE stock <= $1),
		(SELECT COUNT(*) FROM prescriptions WHERE status = 'pending'),
		(SELECT COUNT(*) FROM medicines WHERE expiry_date IS NOT NULL AND expiry_date <= $2)
	`

	var c Counts
	err := r.db.QueryRowContext(ctx, query, lowStockThreshold, expiringBefore).Scan(
		&c.Medicines, &c.Orders, &c.Revenue, &c.Users,
		&c.LowStock, &c.PendingPrescriptions, &c.Expiring,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load dashboard counts",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	return &c, nil
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	query := `
	SELECT o.id, COALESCE(u.name, ''), o.total_amount, o.status, o.created_at
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	ORDER BY o.created_at DESC
	LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query recent orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]RecentOrder, 0, limit)
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.ID, &o.UserName, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *repository) OrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to group orders by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]StatusCount, 0)
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		list = append(list, sc)
	}
	return list, rows.Err()
}

// OrderSnapshots returns the raw item snapshot of every order.
func (r *repository) OrderSnapshots(ctx context.Context) ([][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT items FROM orders`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to read order snapshots", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
