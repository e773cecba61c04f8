package handler

import (
	"encoding/json"
	"net/http"

	"simple-ledger/internal/errors"
)

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError reports failures that never reached the service layer, plus
// unexpected errors surfacing from it. No internal detail is leaked.
func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	writeJSON(w, appErr.HTTPStatus(), appErr)
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, errors.NewAppError(errors.InternalError, "an unexpected error occurred"))
}
