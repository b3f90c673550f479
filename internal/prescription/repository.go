package prescription

import (
	"context"
	"database/sql"
	"errors"

	"medicore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id string) (*Prescription, error)
	ListForUser(ctx context.Context, userID uint) ([]*Prescription, error)
	ListAll(ctx context.Context) ([]*Prescription, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Prescription) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("prescription_id", p.ID),
	)

	query := `
	INSERT INTO prescriptions (id, user_id, filename, content_type, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uploaded_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.UserID, p.Filename, p.ContentType, p.Status,
	).Scan(&p.UploadedAt)
	if err != nil {
		log.Error("failed to insert prescription", zap.Error(err))
		return ErrFailedSave
	}

	log.Info("prescription saved")
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Prescription, error) {
	query := `
	SELECT id, user_id, filename, content_type, status, uploaded_at
	FROM prescriptions
	WHERE id = $1
	`

	var p Prescription
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Filename, &p.ContentType, &p.Status, &p.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPrescriptionNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get prescription",
			zap.String("layer", "repository"),
			zap.String("prescription_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListForUser(ctx context.Context, userID uint) ([]*Prescription, error) {
	query := `
	SELECT id, user_id, filename, content_type, status, uploaded_at
	FROM prescriptions
	WHERE user_id = $1
	ORDER BY uploaded_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list prescriptions",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	list := make([]*Prescription, 0)
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.UserID, &p.Filename, &p.ContentType, &p.Status, &p.UploadedAt); err != nil {
			return nil, err
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *repository) ListAll(ctx context.Context) ([]*Prescription, error) {
	query := `
	SELECT p.id, p.user_id, u.name, p.filename, p.content_type, p.status, p.uploaded_at
	FROM prescriptions p
	JOIN users u ON u.id = p.user_id
	ORDER BY p.uploaded_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list all prescriptions",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	list := make([]*Prescription, 0)
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.UserID, &p.UserName, &p.Filename, &p.ContentType, &p.Status, &p.UploadedAt); err != nil {
			return nil, err
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.String("prescription_id", id),
		zap.String("status", string(status)),
	)

	res, err := r.db.ExecContext(ctx,
		`UPDATE prescriptions SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		log.Error("failed to update prescription status", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPrescriptionNotFound
	}

	log.Info("prescription status updated")
	return nil
}
