// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/farmcoop/order-service/internal/obs"
	"github.com/farmcoop/order-service/internal/sheets"
)

// apiError is the JSON error payload. Available is populated only for
// quantityNotAvailable so clients can show what the user may still order.
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message,omitempty"`
	Available *int   `json:"available,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiError{Code: code, Message: message})
}

var statusByCode = map[string]int{
	sheets.CodeNegativeQuantity:     http.StatusBadRequest,
	sheets.CodeUnknownUser:          http.StatusNotFound,
	sheets.CodeOrdersNotOpen:        http.StatusNotFound,
	sheets.CodeProductNotFound:      http.StatusNotFound,
	sheets.CodeQuantityNotAvailable: http.StatusConflict,
	sheets.CodeSpreadsheetLocked:    http.StatusLocked,
}

// writeSheetsError maps a ledger error to its fixed status and payload;
// anything outside the taxonomy is logged and reported as a 500.
func writeSheetsError(w http.ResponseWriter, r *http.Request, err error) {
	var serr *sheets.Error
	if !errors.As(err, &serr) {
		obs.Logger.Error("internal_error",
			"error", err,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
		)
		WriteJSONError(w, http.StatusInternalServerError, "internalError", "")
		return
	}

	status, ok := statusByCode[serr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	payload := apiError{Code: serr.Code, Message: serr.Message}
	if serr.Code == sheets.CodeQuantityNotAvailable {
		available := serr.Available
		payload.Available = &available
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
