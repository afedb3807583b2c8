package game

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindInvalidState, http.StatusBadRequest},
		{KindNotYourTurn, http.StatusForbidden},
		{KindConflict, http.StatusConflict},
		{KindFull, http.StatusBadRequest},
		{KindInvalidInput, http.StatusBadRequest},
		{KindNoActivePlayers, http.StatusBadRequest},
	}
	for _, c := range cases {
		if got := HTTPStatus(newError(c.kind, "test")); got != c.want {
			t.Fatalf("kind %d: expected status %d, got %d", c.kind, c.want, got)
		}
	}
}

func TestHTTPStatusUnknownError(t *testing.T) {
	if got := HTTPStatus(errors.New("db down")); got != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown error, got %d", got)
	}
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("transaction failed: %w", newError(KindConflict, "duplicate"))
	if got := KindOf(wrapped); got != KindConflict {
		t.Fatalf("expected conflict kind through wrapping, got %d", got)
	}
	if got := KindOf(errors.New("plain")); got != 0 {
		t.Fatalf("expected zero kind for plain error, got %d", got)
	}
}
