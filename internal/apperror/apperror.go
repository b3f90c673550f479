package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError is an error that knows how it should be rendered to an API client.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() string
}

const (
	CodeNotFound             = "NOT_FOUND"
	CodeInsufficientStock    = "INSUFFICIENT_STOCK"
	CodeEmptyCart            = "EMPTY_CART"
	CodePrescriptionRequired = "PRESCRIPTION_REQUIRED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeCommitFailed         = "COMMIT_FAILED"
	CodeCartChanged          = "CART_CHANGED"
	CodeValidation           = "VALIDATION_FAILED"
	CodeConflict             = "CONFLICT"
	CodeTooManyRequests      = "TOO_MANY_REQUESTS"
	CodeInternal             = "INTERNAL_ERROR"
)

type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	cause     error
}

func New(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{httpCode: httpCode, errorCode: errorCode, message: message}
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// Cause lets errors.Cause and errors.Is reach the wrapped failure.
func (e *BaseError) Cause() error  { return e.cause }
func (e *BaseError) Unwrap() error { return e.cause }

// WithDetails returns a copy carrying extra client-facing detail.
func (e *BaseError) WithDetails(details string) *BaseError {
	cp := *e
	cp.details = details
	return &cp
}

// WithMessage returns a copy with a different human readable message.
func (e *BaseError) WithMessage(message string) *BaseError {
	cp := *e
	cp.message = message
	return &cp
}

// Wrap returns a copy that keeps cause for logging and a stack trace.
func (e *BaseError) Wrap(cause error) error {
	cp := *e
	cp.cause = cause
	return errors.WithStack(&cp)
}

// Is matches on error code so wrapped copies still compare equal to the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return t.errorCode == e.errorCode
}

var (
	ErrNotFound             = New(http.StatusNotFound, CodeNotFound, "Resource not found")
	ErrInsufficientStock    = New(http.StatusBadRequest, CodeInsufficientStock, "Insufficient stock available")
	ErrEmptyCart            = New(http.StatusBadRequest, CodeEmptyCart, "Cart empty")
	ErrPrescriptionRequired = New(http.StatusBadRequest, CodePrescriptionRequired, "Prescription required for this order.")
	ErrUnauthorized         = New(http.StatusUnauthorized, CodeUnauthorized, "Not authenticated")
	ErrForbidden            = New(http.StatusForbidden, CodeForbidden, "Admin access required")
	ErrCommitFailed         = New(http.StatusInternalServerError, CodeCommitFailed, "Order could not be committed, cart unchanged")
	ErrCartChanged          = New(http.StatusConflict, CodeCartChanged, "Cart changed during checkout, please retry")
	ErrValidation           = New(http.StatusBadRequest, CodeValidation, "Invalid request")
	ErrConflict             = New(http.StatusConflict, CodeConflict, "Resource already exists")
	ErrTooManyRequests      = New(http.StatusTooManyRequests, CodeTooManyRequests, "Too many requests")
	ErrInternal             = New(http.StatusInternalServerError, CodeInternal, "Internal server error")
)

// As extracts the AppError from anywhere in err's chain.
func As(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
