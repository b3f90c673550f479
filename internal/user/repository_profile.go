package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"medicore-be/internal/logger"

	"go.uber.org/zap"
)

// UpdateProfile patches only the fields that are set. Password must already be hashed.
func (r *repository) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.Uint("user_id", params.UserID),
	)

	sets := []string{}
	args := []any{}

	if params.Name != nil {
		args = append(args, *params.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if params.Phone != nil {
		args = append(args, *params.Phone)
		sets = append(sets, fmt.Sprintf("phone = $%d", len(args)))
	}
	if params.Password != nil {
		args = append(args, *params.Password)
		sets = append(sets, fmt.Sprintf("password_hash = $%d", len(args)))
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, params.UserID)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, params.UserID)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		fmt.Sprintf(` WHERE id = $%d RETURNING `, len(args)) + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile updated", zap.Int("fields", len(sets)-1))
	return u, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update password", zap.Uint("user_id", id), zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
