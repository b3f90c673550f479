package middleware

import (
	"medicore-be/internal/apperror"
	"medicore-be/internal/utils"

	"github.com/labstack/echo/v4"
)

// RequireUser rejects anonymous callers with 401.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := utils.PrincipalFrom(c.Request().Context()); !ok {
			return apperror.ErrUnauthorized
		}
		return next(c)
	}
}

// RequireRole allows only the listed roles; anonymous callers get 401, others 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := utils.PrincipalFrom(ctx); !ok {
				return apperror.ErrUnauthorized
			}
			if !utils.HasRole(ctx, roles...) {
				return apperror.ErrForbidden
			}
			return next(c)
		}
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireRole(utils.RoleAdmin)(next)
}
