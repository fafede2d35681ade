package client

import (
	"errors"
	"net/http"

	"github.com/Dawn-Fighter/Mandi-Counter/client/internal/api"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

var errEmptyBaseURL = errors.New("baseURL cannot be empty")

// Re-export the shared sentinels so callers compare against one symbol.
var (
	ErrNotFound   = model.ErrNotFound
	ErrValidation = model.ErrValidation
)

// mapStatusError converts HTTP status failures onto the shared sentinels
// while keeping the original error text.
func mapStatusError(err error) error {
	if err == nil {
		return nil
	}
	var se *api.StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusNotFound:
			return joinSentinel(model.ErrNotFound, err)
		case http.StatusBadRequest:
			return joinSentinel(model.ErrValidation, err)
		}
	}
	return err
}

func joinSentinel(sentinel, err error) error {
	return &sentinelError{sentinel: sentinel, err: err}
}

type sentinelError struct {
	sentinel error
	err      error
}

func (e *sentinelError) Error() string { return e.err.Error() }

func (e *sentinelError) Is(target error) bool { return target == e.sentinel }

func (e *sentinelError) Unwrap() error { return e.err }

// isRecoverable reports whether a failed call is worth retrying. 4xx
// responses (except timeout and throttling) are permanent; everything else,
// including network errors, may be transient.
func isRecoverable(err error) bool {
	var se *api.StatusError
	if !errors.As(err, &se) {
		return true
	}
	if se.StatusCode == http.StatusRequestTimeout || se.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return se.StatusCode < 400 || se.StatusCode >= 500
}
