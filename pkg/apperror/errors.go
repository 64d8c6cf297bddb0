package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured, coded error returned by the core and its adapters.
type AppError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Fatal   bool   `json:"-"` // Ends the operation in progress; not retryable as-is
	Err     error  `json:"-"` // Wrapped internal error (not shown to the customer)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to a status for the read-only status server.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnknownDenomination, CodeInvalidQuantity, CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeOutOfStock, CodeInvalidState:
		return http.StatusConflict
	case CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new recoverable AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, fatal bool, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   fatal,
		Err:     err,
	}
}

// Is reports whether any error in err's chain is an AppError with the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsFatal reports whether err carries a fatal AppError. Errors that are not
// AppErrors are treated as fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fatal
	}
	return true
}

const (
	CodeUnknownDenomination = "COIN_001"
	CodeNotFound            = "ITEM_001"
	CodeOutOfStock          = "ITEM_002"
	CodeInvalidQuantity     = "ITEM_003"
	CodeInvalidState        = "TXN_001"
	CodeStorageCorrupt      = "STORE_001"
	CodeStorageUnavailable  = "STORE_002"
	CodeStorageWriteFailure = "STORE_003"
	CodeInternal            = "SYS_001"
	CodeRateLimited         = "SYS_002"
	CodeInvalidRequest      = "REQ_001"
)

// ---- Coins (COIN) ----

func ErrUnknownDenomination(code int) *AppError {
	return New(CodeUnknownDenomination, fmt.Sprintf("Unknown coin selection %d", code))
}

// ---- Items & stock (ITEM) ----

func ErrNotFound(name string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("Item %q not found", name))
}

func ErrOutOfStock(name string) *AppError {
	return New(CodeOutOfStock, fmt.Sprintf("Item %q is out of stock", name))
}

func ErrInvalidQuantity(qty int) *AppError {
	return New(CodeInvalidQuantity, fmt.Sprintf("Invalid quantity %d", qty))
}

// ---- Transaction (TXN) ----

func ErrInvalidState(op string, status string) *AppError {
	return New(CodeInvalidState, fmt.Sprintf("Cannot %s while transaction is %s", op, status))
}

// ---- Storage (STORE) ----

func ErrStorageCorrupt(err error) *AppError {
	return Wrap(CodeStorageCorrupt, "Inventory storage is corrupt", true, err)
}

func ErrStorageUnavailable(err error) *AppError {
	return Wrap(CodeStorageUnavailable, "Inventory storage is unavailable", true, err)
}

func ErrStorageWriteFailure(err error) *AppError {
	return Wrap(CodeStorageWriteFailure, "Failed to write inventory storage", true, err)
}

// ---- Status server requests (REQ) ----

func ErrInvalidRequest(msg string) *AppError {
	return New(CodeInvalidRequest, msg)
}

// ---- System (SYS) ----

// InternalError wraps an unexpected error as a fatal SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal error", true, err)
}

func ErrRateLimited() *AppError {
	return New(CodeRateLimited, "Too many requests, slow down")
}
