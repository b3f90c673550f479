package rest

import (
	"net/http"

	"medicore-be/internal/cart"

	"github.com/labstack/echo/v4"
)

type cartHandler struct {
	carts cart.Service
}

// Quantities are stored in INTEGER columns.
type addToCartRequest struct {
	MedicineID string `json:"medicine_id" validate:"required"`
	Quantity   *int   `json:"quantity" validate:"omitempty,max=2147483647"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity" validate:"max=2147483647"`
}

func (h *cartHandler) get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	crt, err := h.carts.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, crt)
}

func (h *cartHandler) add(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	entry, err := h.carts.Add(c.Request().Context(), userID, req.MedicineID, qty)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":  "Cart updated successfully",
		"quantity": entry.Quantity,
	})
}

func (h *cartHandler) update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.carts.UpdateQuantity(c.Request().Context(), userID, c.Param("medicineId"), req.Quantity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Updated"})
}

func (h *cartHandler) remove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.carts.Remove(c.Request().Context(), userID, c.Param("medicineId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Removed"})
}

func (h *cartHandler) clear(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.carts.Clear(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Cart cleared"})
}
