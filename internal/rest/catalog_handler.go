package rest

import (
	"net/http"
	"strconv"
	"strings"

	"medicore-be/internal/catalog"
	"medicore-be/internal/utils"

	"github.com/labstack/echo/v4"
)

type catalogHandler struct {
	catalog catalog.Service
}

func optionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseListParams(c echo.Context) catalog.ListParams {
	p := catalog.ListParams{
		Filter: catalog.Filter{
			Category:    c.QueryParam("category"),
			Subcategory: c.QueryParam("subcategory"),
			Search:      strings.TrimSpace(c.QueryParam("search")),
			MinPrice:    optionalFloat(c.QueryParam("min_price")),
			MaxPrice:    optionalFloat(c.QueryParam("max_price")),
		},
		SortBy:  catalog.SortField(c.QueryParam("sort_by")),
		SortAsc: !strings.EqualFold(c.QueryParam("order"), "desc"),
		Page:    utils.ParseIntOrZero(c.QueryParam("page")),
		Limit:   utils.ParseIntOrZero(c.QueryParam("limit")),
	}
	return p
}

func (h *catalogHandler) list(c echo.Context) error {
	page, err := h.catalog.Search(c.Request().Context(), parseListParams(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *catalogHandler) categories(c echo.Context) error {
	cats, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *catalogHandler) get(c echo.Context) error {
	m, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *catalogHandler) popular(c echo.Context) error {
	meds, err := h.catalog.Popular(c.Request().Context(), utils.ParseIntOrZero(c.QueryParam("limit")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"recommendations": meds,
		"type":            "popular",
	})
}

func (h *catalogHandler) create(c echo.Context) error {
	var req catalog.MedicineInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.catalog.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Medicine added successfully!",
		"id":       m.ID,
		"medicine": m,
	})
}

func (h *catalogHandler) update(c echo.Context) error {
	var req catalog.MedicineInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.catalog.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Medicine updated successfully!",
		"medicine": m,
	})
}

func (h *catalogHandler) delete(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Medicine deleted successfully"))
}
