package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/todod/internal/domain"
)

// Fixed response messages.
const (
	MsgTaskNotFound = "Task not found"
	MsgTaskDeleted  = "Task deleted successfully"
	MsgInternal     = "Internal Server Error"
)

// DetailResponse is the error body for 404 and 500 responses.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ValidationResponse is the 422 body.
type ValidationResponse struct {
	Detail []FieldError `json:"detail"`
}

// MessageResponse is the body of a successful delete.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("writing response body", "error", err)
	}
}

// writeError maps an error to its HTTP status. It is the only place where
// errors become status codes.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Detail: verr.Fields})
	case errors.Is(err, domain.ErrTodoNotFound):
		writeJSON(w, http.StatusNotFound, DetailResponse{Detail: MsgTaskNotFound})
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, DetailResponse{Detail: "Request body too large"})
	default:
		loggerFrom(r.Context(), h.logger).ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, DetailResponse{Detail: MsgInternal})
	}
}
