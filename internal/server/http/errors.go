package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, detail string) {
	writeJSON(w, status, errorResponse{Error: kind, Detail: detail})
}

// writeServiceError translates service errors into the JSON error envelope.
// Store and internal details are not sent to the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or missing token")
	case errors.Is(err, common.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, common.ErrorUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", common.ErrorUnavailable.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
