package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"bad request", BadRequest("Username is required"), http.StatusBadRequest, "Username is required"},
		{"unauthorized", Unauthorized("Unauthorized"), http.StatusUnauthorized, "Unauthorized"},
		{"not found", NotFound("User not found"), http.StatusNotFound, "User not found"},
		{"wrapped", fmt.Errorf("register: %w", NotFound("User not found")), http.StatusNotFound, "User not found"},
		{"unclassified", errors.New("disk I/O error"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.wantStatus {
				t.Errorf("StatusOf = %d, want %d", got, tt.wantStatus)
			}
			if got := MessageOf(tt.err); got != tt.wantMsg {
				t.Errorf("MessageOf = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
