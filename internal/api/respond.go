package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xtrntr/tradelog/internal/apperrors"
)

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    any    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message any) {
	writeJSON(w, status, errorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

// respondErr maps a service or validation error to its status code.
// Internal causes are logged and never echoed to the client.
func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Fields)
		return
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("Internal server error", err)
	}
	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeError(w, status, appErr.Message)
}
