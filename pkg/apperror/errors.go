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

// Validation returns a bad-input error. Recovered locally by the caller
// (re-prompt); nothing is stored when it fires.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrEmptyRackLocation() *AppError {
	return New("VAL_002", "Rack location must not be empty", http.StatusBadRequest)
}

func ErrInvalidOperation(op string) *AppError {
	return New("VAL_003", fmt.Sprintf("Unknown operation type: %s", op), http.StatusBadRequest)
}

func ErrEmptyURL() *AppError {
	return New("VAL_004", "Webhook URL must not be empty", http.StatusBadRequest)
}

// ---- Storage (STG) ----

// ErrStorage wraps a persistence failure. Storage errors abort the current
// operation and always propagate to the caller.
func ErrStorage(err error) *AppError {
	return Wrap("STG_001", "Persistence layer unavailable", http.StatusServiceUnavailable, err)
}

func ErrNotFound(entity string) *AppError {
	return New("STG_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidPassword() *AppError {
	return New("AUTH_001", "Incorrect password", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
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
