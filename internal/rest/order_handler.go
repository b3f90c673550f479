package rest

import (
	"net/http"

	"medicore-be/internal/order"
	"medicore-be/internal/utils"

	"github.com/labstack/echo/v4"
)

type orderHandler struct {
	orders order.Service
}

type placeOrderRequest struct {
	PaymentMethod   string `json:"payment_method" validate:"required"`
	ShippingAddress string `json:"shipping_address" validate:"required,max=1000"`
	PrescriptionID  string `json:"prescription_id"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *orderHandler) place(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.orders.PlaceOrder(c.Request().Context(), order.PlaceOrderInput{
		UserID:          userID,
		PaymentMethod:   order.PaymentMethod(req.PaymentMethod),
		ShippingAddress: req.ShippingAddress,
		PrescriptionRef: req.PrescriptionID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"order_id": res.OrderID,
		"status":   res.Status,
		"total":    res.Total,
	})
}

func (h *orderHandler) listMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"orders": orders})
}

func (h *orderHandler) listAll(c echo.Context) error {
	orders, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"orders": orders})
}

func (h *orderHandler) get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	o, err := h.orders.Get(ctx, c.Param("id"), userID, utils.IsAdmin(ctx))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

func (h *orderHandler) invoice(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	inv, err := h.orders.Invoice(ctx, c.Param("id"), userID, utils.IsAdmin(ctx))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *orderHandler) updateStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	status := order.Status(req.Status)
	if err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Order status updated to "+req.Status))
}
