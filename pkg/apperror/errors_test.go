package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New("VAL_001", "bad input", http.StatusBadRequest)
	assert.Equal(t, "[VAL_001] bad input", e.Error())

	inner := errors.New("connection refused")
	wrapped := Wrap("STG_001", "Persistence layer unavailable", http.StatusServiceUnavailable, inner)
	assert.Contains(t, wrapped.Error(), "STG_001")
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	e := ErrStorage(inner)
	assert.True(t, errors.Is(e, inner))

	var appErr *AppError
	assert.True(t, errors.As(error(e), &appErr))
	assert.Equal(t, "STG_001", appErr.Code)
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"empty rack location", ErrEmptyRackLocation(), "VAL_002", http.StatusBadRequest},
		{"invalid operation", ErrInvalidOperation("STOCK_UP"), "VAL_003", http.StatusBadRequest},
		{"empty url", ErrEmptyURL(), "VAL_004", http.StatusBadRequest},
		{"storage", ErrStorage(errors.New("x")), "STG_001", http.StatusServiceUnavailable},
		{"not found", ErrNotFound("transaction"), "STG_002", http.StatusNotFound},
		{"invalid password", ErrInvalidPassword(), "AUTH_001", http.StatusUnauthorized},
		{"invalid token", ErrInvalidToken(), "AUTH_002", http.StatusUnauthorized},
		{"rate limit", ErrRateLimitExceeded(), "RATE_001", http.StatusTooManyRequests},
		{"internal", InternalError(errors.New("x")), "SYS_001", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestErrNotFound_Message(t *testing.T) {
	assert.Equal(t, "transaction not found", ErrNotFound("transaction").Message)
}
