package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", NotFound("slot", nil), http.StatusNotFound},
		{"validation", Validation("name is required"), http.StatusBadRequest},
		{"duplicate email", DuplicateEmail("a@b.com"), http.StatusBadRequest},
		{"duplicate slot", DuplicateSlot(), http.StatusBadRequest},
		{"unauthorized", Unauthorized(errors.New("bad token")), http.StatusUnauthorized},
		{"unavailable", Unavailable(errors.New("connection refused")), http.StatusServiceUnavailable},
		{"store", Store("insert failed", errors.New("boom")), http.StatusInternalServerError},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "email a@b.com is already registered", DuplicateEmail("a@b.com").Error())

	wrapped := Store("insert failed", errors.New("boom"))
	assert.Equal(t, "insert failed: boom", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable(cause)

	assert.ErrorIs(t, err, cause)
}

func TestIs(t *testing.T) {
	err := NotFound("staff member", nil)

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))

	// works through wrapping
	assert.True(t, Is(fmt.Errorf("outer: %w", err), ErrNotFound))

	assert.False(t, Is(errors.New("plain"), ErrNotFound))
	assert.False(t, Is(nil, ErrNotFound))
}
