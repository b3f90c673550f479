package middleware

import (
	"medicore-be/internal/logger"
	"medicore-be/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AccessLog writes one structured line per request. Errors are rendered first
// so the logged status matches what the client received.
func AccessLog(reg *metrics.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			timer := metrics.StartTimer()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			duration := timer.Duration()

			if reg != nil {
				reg.ObserveRequest(status, duration)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("route", c.Path()),
				zap.Int("status", status),
				zap.Duration("duration", duration),
				zap.String("ip", c.RealIP()),
			}

			log := logger.FromCtx(req.Context())
			switch {
			case status >= 500:
				log.Error("http request", fields...)
			case status >= 400:
				log.Warn("http request", fields...)
			default:
				log.Info("http request", fields...)
			}

			// Already handled above.
			return nil
		}
	}
}

