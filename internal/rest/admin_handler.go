package rest

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"medicore-be/internal/report"
	"medicore-be/internal/user"
	"medicore-be/internal/utils"

	"github.com/labstack/echo/v4"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type adminHandler struct {
	reports report.Service
	users   user.Service
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (h *adminHandler) stats(c echo.Context) error {
	s, err := h.reports.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *adminHandler) alerts(c echo.Context) error {
	a, err := h.reports.Alerts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *adminHandler) reportSummary(c echo.Context) error {
	r, err := h.reports.Reports(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *adminHandler) listUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

// exportInventory buffers the workbook so a failed export still gets a JSON error.
func (h *adminHandler) exportInventory(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.reports.ExportInventory(c.Request().Context(), &buf); err != nil {
		return err
	}

	name := fmt.Sprintf("inventory-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (h *adminHandler) setRole(c echo.Context) error {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		return user.ErrUserNotFound
	}

	var req setRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, err := h.users.SetRole(c.Request().Context(), id, user.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Role updated successfully",
		"user":    u,
	})
}
