package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Dawn-Fighter/Mandi-Counter/client/internal/api"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

func TestMapStatusError(t *testing.T) {
	notFound := &api.StatusError{StatusCode: 404, Operation: "get entry"}
	if err := mapStatusError(notFound); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("404 not mapped to ErrNotFound: %v", err)
	}

	badReq := &api.StatusError{StatusCode: 400, Operation: "create entry", Message: "totalAmount must be greater than zero"}
	err := mapStatusError(badReq)
	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("400 not mapped to ErrValidation: %v", err)
	}
	// The original status error stays reachable.
	var se *api.StatusError
	if !errors.As(err, &se) || se.StatusCode != 400 {
		t.Errorf("status error lost in mapping: %v", err)
	}

	other := fmt.Errorf("dial tcp: connection refused")
	if got := mapStatusError(other); got != other {
		t.Errorf("non-status error mutated: %v", got)
	}
	if mapStatusError(nil) != nil {
		t.Error("nil should pass through")
	}
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&api.StatusError{StatusCode: 500}, true},
		{&api.StatusError{StatusCode: 503}, true},
		{&api.StatusError{StatusCode: 429}, true},
		{&api.StatusError{StatusCode: 408}, true},
		{&api.StatusError{StatusCode: 400}, false},
		{&api.StatusError{StatusCode: 404}, false},
		{fmt.Errorf("network down"), true},
	}
	for _, tt := range tests {
		if got := isRecoverable(tt.err); got != tt.want {
			t.Errorf("isRecoverable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
