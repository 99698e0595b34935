// internal/app/system/apperr/apperr_test.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{Forbidden("no"), http.StatusForbidden},
		{Conflict("dup"), http.StatusConflict},
		{Internal("boom", errors.New("cause")), http.StatusInternalServerError},
		{PartialFailure("halfway", map[string]int64{"sections": 2}, errors.New("cause")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Errorf("%q: got %d, want %d", tt.err.Message, got, tt.want)
		}
	}
}

func TestAs_Wrapped(t *testing.T) {
	inner := NotFound("class not found")
	wrapped := fmt.Errorf("loading class: %w", inner)

	e, ok := As(wrapped)
	if !ok {
		t.Fatal("As failed on wrapped error")
	}
	if e.Kind != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", e.Kind)
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("As matched a plain error")
	}
}

func TestIsKind(t *testing.T) {
	if !IsKind(Conflict("dup"), KindConflict) {
		t.Error("IsKind missed matching kind")
	}
	if IsKind(Conflict("dup"), KindNotFound) {
		t.Error("IsKind matched wrong kind")
	}
	if IsKind(errors.New("plain"), KindInternal) {
		t.Error("IsKind matched non-apperr")
	}
}

func TestPartialFailure_CarriesCounts(t *testing.T) {
	cause := errors.New("write concern")
	e := PartialFailure("period delete failed at subjects", map[string]int64{"sections": 3}, cause)

	if e.Counts["sections"] != 3 {
		t.Errorf("counts lost: %v", e.Counts)
	}
	if !errors.Is(e, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}
