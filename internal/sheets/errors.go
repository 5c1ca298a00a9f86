package sheets

import "fmt"

// Error codes returned by this package. They are stable identifiers meant
// for machine consumption at the API boundary.
const (
	CodeSpreadsheetLocked    = "spreadsheetLocked"
	CodeOrdersNotOpen        = "ordersNotOpen"
	CodeNegativeQuantity     = "negativeQuantity"
	CodeProductNotFound      = "productNotFound"
	CodeQuantityNotAvailable = "quantityNotAvailable"
	CodeUnknownUser          = "unknownUser"
)

// Error is a sheet-level failure with a stable machine-readable code.
// Transport errors from the Sheets API are never converted into an Error;
// they propagate unchanged.
type Error struct {
	Code    string
	Message string
	// Available carries the computed availability when Code is
	// CodeQuantityNotAvailable; it is 0 otherwise.
	Available int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errSpreadsheetLocked() *Error {
	return &Error{Code: CodeSpreadsheetLocked, Message: "the spreadsheet is locked by another order"}
}

func errOrdersNotOpen() *Error {
	return &Error{Code: CodeOrdersNotOpen, Message: "ordering is not currently open"}
}

func errNegativeQuantity() *Error {
	return &Error{Code: CodeNegativeQuantity, Message: "quantity must not be negative"}
}

func errProductNotFound() *Error {
	return &Error{Code: CodeProductNotFound, Message: "no such product"}
}

func errQuantityNotAvailable(available int) *Error {
	return &Error{
		Code:      CodeQuantityNotAvailable,
		Message:   fmt.Sprintf("only %d available", available),
		Available: available,
	}
}

func errUnknownUser() *Error {
	return &Error{Code: CodeUnknownUser, Message: "no such user"}
}
