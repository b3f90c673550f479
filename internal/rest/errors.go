package rest

import (
	"errors"
	"net/http"

	"medicore-be/internal/apperror"
	"medicore-be/internal/cart"
	"medicore-be/internal/catalog"
	"medicore-be/internal/logger"
	"medicore-be/internal/order"
	"medicore-be/internal/prescription"
	"medicore-be/internal/user"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorMapping struct {
	target error
	kind   *apperror.BaseError
	// message overrides kind's default; empty keeps the sentinel's own text.
	message string
}

var (
	medicineNotFound     = apperror.ErrNotFound.WithMessage("Medicine not found")
	orderNotFound        = apperror.ErrNotFound.WithMessage("Order not found")
	prescriptionNotFound = apperror.ErrNotFound.WithMessage("Prescription not found")
	userNotFound         = apperror.ErrNotFound.WithMessage("User not found")
)

var domainErrors = []errorMapping{
	// -- Catalog --
	{target: catalog.ErrMedicineNotFound, kind: medicineNotFound},
	{target: catalog.ErrInvalidExpiryDate, kind: apperror.ErrValidation, message: catalog.ErrInvalidExpiryDate.Error()},
	{target: catalog.ErrNegativeValue, kind: apperror.ErrValidation, message: catalog.ErrNegativeValue.Error()},

	// -- Cart --
	{target: cart.ErrMedicineNotFound, kind: medicineNotFound},
	{target: cart.ErrInsufficientStock, kind: apperror.ErrInsufficientStock},
	{target: cart.ErrInvalidQuantity, kind: apperror.ErrValidation, message: cart.ErrInvalidQuantity.Error()},

	// -- Order --
	{target: order.ErrEmptyCart, kind: apperror.ErrEmptyCart},
	{target: order.ErrPrescriptionRequired, kind: apperror.ErrPrescriptionRequired},
	{target: order.ErrInsufficientStock, kind: apperror.ErrInsufficientStock},
	{target: order.ErrCartChanged, kind: apperror.ErrCartChanged},
	{target: order.ErrCommitFailed, kind: apperror.ErrCommitFailed},
	{target: order.ErrOrderNotFound, kind: orderNotFound},
	{target: order.ErrInvalidStatus, kind: apperror.ErrValidation, message: order.ErrInvalidStatus.Error()},
	{target: order.ErrInvalidPaymentMethod, kind: apperror.ErrValidation, message: order.ErrInvalidPaymentMethod.Error()},

	// -- Prescription --
	{target: prescription.ErrPrescriptionNotFound, kind: prescriptionNotFound},
	{target: prescription.ErrEmptyFile, kind: apperror.ErrValidation, message: prescription.ErrEmptyFile.Error()},
	{target: prescription.ErrFileTooLarge, kind: apperror.ErrValidation, message: prescription.ErrFileTooLarge.Error()},
	{target: prescription.ErrInvalidStatus, kind: apperror.ErrValidation, message: prescription.ErrInvalidStatus.Error()},

	// -- User --
	{target: user.ErrPasswordTooShort, kind: apperror.ErrValidation, message: user.ErrPasswordTooShort.Error()},
	{target: user.ErrInvalidRole, kind: apperror.ErrValidation, message: user.ErrInvalidRole.Error()},
	{target: user.ErrInvalidCredentials, kind: apperror.ErrUnauthorized.WithMessage("Invalid credentials")},
	{target: user.ErrInvalidResetToken, kind: apperror.ErrUnauthorized.WithMessage("Invalid or expired reset token")},
	{target: user.ErrEmailExists, kind: apperror.ErrConflict.WithMessage("Email already registered")},
	{target: user.ErrUserNotFound, kind: userNotFound},
}

// toAppError resolves any error returned by a handler into the client facing taxonomy.
func toAppError(err error) apperror.AppError {
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			if m.message != "" {
				return m.kind.WithMessage(m.message)
			}
			return m.kind
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fromHTTPError(he)
	}

	return apperror.ErrInternal
}

func fromHTTPError(he *echo.HTTPError) apperror.AppError {
	switch he.Code {
	case http.StatusNotFound:
		return apperror.ErrNotFound.WithMessage("Route not found")
	case http.StatusMethodNotAllowed:
		return apperror.New(http.StatusMethodNotAllowed, apperror.CodeNotFound, "Method not allowed")
	case http.StatusUnauthorized:
		return apperror.ErrUnauthorized
	case http.StatusForbidden:
		return apperror.ErrForbidden
	case http.StatusRequestEntityTooLarge:
		return apperror.ErrValidation.WithMessage("Request body too large")
	case http.StatusTooManyRequests:
		return apperror.ErrTooManyRequests
	}
	if he.Code >= 400 && he.Code < 500 {
		return apperror.ErrValidation.WithDetails(http.StatusText(he.Code))
	}
	return apperror.ErrInternal
}

// ErrorHandler renders every failure in the shared error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()
	appErr := toAppError(err)

	if appErr.HTTPCode() >= http.StatusInternalServerError {
		logger.FromCtx(ctx).Error("request failed",
			zap.String("code", appErr.ErrorCode()),
			zap.Error(err),
		)
	}

	resp := apperror.NewResponse(appErr, logger.RequestIDFrom(ctx))

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(appErr.HTTPCode())
	} else {
		writeErr = c.JSON(appErr.HTTPCode(), resp)
	}
	if writeErr != nil {
		logger.FromCtx(ctx).Error("failed to write error response", zap.Error(writeErr))
	}
}
