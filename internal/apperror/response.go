package apperror

import "net/http"

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	RequestID string `json:"request_id,omitempty"`
}

// Response is the body of every non-2xx reply.
type Response struct {
	Error ErrorInfo `json:"error"`
	Meta  Meta      `json:"meta"`
}

// NewResponse renders appErr for clients. Details are dropped for auth and server failures.
func NewResponse(appErr AppError, requestID string) Response {
	info := ErrorInfo{
		Code:    appErr.ErrorCode(),
		Message: appErr.Message(),
		Details: appErr.Details(),
	}
	switch code := appErr.HTTPCode(); {
	case code >= http.StatusInternalServerError, code == http.StatusUnauthorized, code == http.StatusForbidden:
		info.Details = ""
	}
	return Response{Error: info, Meta: Meta{RequestID: requestID}}
}
