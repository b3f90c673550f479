package rest

import (
	"fmt"
	"io"
	"net/http"

	"medicore-be/internal/apperror"
	"medicore-be/internal/prescription"

	"github.com/labstack/echo/v4"
)

type prescriptionHandler struct {
	prescriptions prescription.Service
	maxBytes      int64
}

func (h *prescriptionHandler) listMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	list, err := h.prescriptions.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"prescriptions": list})
}

func (h *prescriptionHandler) listAll(c echo.Context) error {
	list, err := h.prescriptions.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"prescriptions": list})
}

func (h *prescriptionHandler) upload(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return prescription.ErrEmptyFile
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return prescription.ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return apperror.ErrValidation.WithDetails("unreadable upload")
	}
	defer src.Close()

	limit := h.maxBytes
	if limit <= 0 {
		limit = fh.Size
	}
	// One extra byte lets the service detect an oversized body.
	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return apperror.ErrValidation.WithDetails("unreadable upload")
	}

	res, err := h.prescriptions.Upload(c.Request().Context(), prescription.Upload{
		UserID:           userID,
		OriginalFilename: fh.Filename,
		ContentType:      fh.Header.Get(echo.HeaderContentType),
		Data:             data,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":  "Upload successful",
		"id":       res.ID,
		"filename": res.Filename,
	})
}

func (h *prescriptionHandler) updateStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.prescriptions.SetStatus(c.Request().Context(), c.Param("id"), prescription.Status(req.Status)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Status updated"))
}

func (h *prescriptionHandler) file(c echo.Context) error {
	doc, err := h.prescriptions.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, contentType, doc.Data)
}
