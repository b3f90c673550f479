package rest

import (
	"context"
	"net/http"
	"time"

	"medicore-be/internal/logger"
	"medicore-be/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type systemHandler struct {
	db      Pinger
	metrics *metrics.Registry
}

func (h *systemHandler) health(c echo.Context) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			logger.FromCtx(ctx).Warn("health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":   "unavailable",
				"database": "down",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "up",
	})
}

func (h *systemHandler) snapshot(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metrics.Snapshot())
}
