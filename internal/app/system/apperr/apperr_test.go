package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusByKind(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"bad request", BadRequest("missing email"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("bad credentials"), http.StatusUnauthorized},
		{"not found", NotFound("no such user"), http.StatusNotFound},
		{"conflict", Conflict("email taken"), http.StatusConflict},
		{"internal", Internal("boom", errors.New("cause")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Status(); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFrom_Wrapped(t *testing.T) {
	inner := NotFound("no such user")
	wrapped := fmt.Errorf("loading account: %w", inner)

	got := From(wrapped)
	if got == nil {
		t.Fatal("From returned nil for a wrapped *Error")
	}
	if got.Kind != KindNotFound {
		t.Errorf("Kind = %v, want KindNotFound", got.Kind)
	}
}

func TestFrom_PlainError(t *testing.T) {
	if got := From(errors.New("plain")); got != nil {
		t.Errorf("From(plain error) = %v, want nil", got)
	}
}

func TestInternal_KeepsCauseOutOfMessageless(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("deletion failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
	if err.Msg != "deletion failed" {
		t.Errorf("Msg = %q, want %q", err.Msg, "deletion failed")
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("email taken"))
	if !IsKind(err, KindConflict) {
		t.Error("expected IsKind(KindConflict) = true")
	}
	if IsKind(err, KindNotFound) {
		t.Error("expected IsKind(KindNotFound) = false")
	}
	if IsKind(nil, KindConflict) {
		t.Error("expected IsKind(nil, ...) = false")
	}
}
