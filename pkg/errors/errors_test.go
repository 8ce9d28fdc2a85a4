package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeConflict, http.StatusBadRequest},
		{ErrCodeAlreadyExists, http.StatusBadRequest},
		{ErrCodeInvalidLink, http.StatusBadRequest},
		{ErrCodeInvalidToken, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{ErrCodeInternalError, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := HTTPStatus(tt.code); got != tt.want {
				t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestCodeOf_WrappedChain(t *testing.T) {
	base := New(ErrCodeNotFound, "house not found")
	wrapped := fmt.Errorf("loading house: %w", base)

	if got := CodeOf(wrapped); got != ErrCodeNotFound {
		t.Errorf("CodeOf() = %q, want %q", got, ErrCodeNotFound)
	}
	if !Is(wrapped, ErrCodeNotFound) {
		t.Error("Is() = false, want true")
	}
	if Is(nil, ErrCodeNotFound) {
		t.Error("Is(nil) = true, want false")
	}
	if got := CodeOf(fmt.Errorf("plain")); got != ErrCodeInternalError {
		t.Errorf("CodeOf(plain) = %q, want %q", got, ErrCodeInternalError)
	}
}

func TestAppError_Error(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), ErrCodeInternalError, "failed to save")
	want := "INTERNAL_ERROR: failed to save (boom)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	v := Validation(map[string]string{"email": "Email already exists."})
	if v.Fields["email"] != "Email already exists." {
		t.Errorf("Fields[email] = %q", v.Fields["email"])
	}
}
