package rest

import (
	"medicore-be/internal/apperror"
	"medicore-be/internal/utils"

	"github.com/labstack/echo/v4"
)

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(message string) messageResponse {
	return messageResponse{Success: true, Message: message}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperror.ErrValidation.WithDetails("malformed request body")
	}
	return c.Validate(req)
}

// currentUserID reads the caller resolved by the authenticator. Routes are
// guarded, so a missing id only happens when a guard was forgotten.
func currentUserID(c echo.Context) (uint, error) {
	id, ok := utils.UserIDFrom(c.Request().Context())
	if !ok {
		return 0, apperror.ErrUnauthorized
	}
	return id, nil
}
