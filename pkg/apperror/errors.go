package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
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

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation reports malformed receipt/product construction input.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrEmptyMerchant() *AppError {
	return New("VAL_002", "Merchant name must not be empty", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_003", "Amount must be a valid non-negative decimal", http.StatusBadRequest)
}

func ErrInvalidQuantity() *AppError {
	return New("VAL_004", "Item quantity must be a positive integer", http.StatusBadRequest)
}

// ---- Payload decoding (DEC) ----

// Decode reports an unparseable scan payload.
func Decode(message string) *AppError {
	return New("DEC_001", message, http.StatusUnprocessableEntity)
}

// DecodeWrap reports an unparseable scan payload, keeping the parse error.
func DecodeWrap(message string, err error) *AppError {
	return Wrap("DEC_001", message, http.StatusUnprocessableEntity, err)
}

// DecodeMissingField reports a required payload field that is absent.
func DecodeMissingField(field string) *AppError {
	return New("DEC_002", fmt.Sprintf("Payload is missing required field %q", field), http.StatusUnprocessableEntity)
}

// DecodeBadField reports a payload field that failed coercion.
func DecodeBadField(field string, value string) *AppError {
	return New("DEC_003", fmt.Sprintf("Payload field %q has invalid value %q", field, value), http.StatusUnprocessableEntity)
}

// ---- Ledger (LED) ----

func ErrReceiptNotFound() *AppError {
	return New("LED_404", "Receipt not found", http.StatusNotFound)
}

func ErrProfileNotSet() *AppError {
	return New("LED_001", "Merchant profile has not been set up", http.StatusNotFound)
}

func ErrUnknownProduct(id string) *AppError {
	return New("LED_002", fmt.Sprintf("Order references unknown product %s", id), http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbiddenRole(required string) *AppError {
	return New("AUTH_004", fmt.Sprintf("This operation requires the %s role", required), http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ErrStorageError wraps a snapshot-store failure.
func ErrStorageError(err error) *AppError {
	return Wrap("SYS_002", "Ledger storage failure", http.StatusInternalServerError, err)
}
