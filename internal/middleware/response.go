package middleware

import (
	"encoding/json"
	"net/http"

	"medicore-be/internal/apperror"
	"medicore-be/internal/logger"
)

func writeError(w http.ResponseWriter, r *http.Request, appErr apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPCode())
	_ = json.NewEncoder(w).Encode(apperror.NewResponse(appErr, logger.RequestIDFrom(r.Context())))
}
